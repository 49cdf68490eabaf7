package storage

import (
	"context"
	"errors"
	"testing"
)

func TestTieredGet(t *testing.T) {
	ctx := context.Background()

	t.Run("primary answers", func(t *testing.T) {
		primary, local := newFakeBackend("remote"), newFakeBackend("local")
		primary.values["k"] = "remote-value"
		local.values["k"] = "local-value"

		v, ok, err := NewTiered(primary, local).Get(ctx, "k")
		if err != nil || !ok || v != "remote-value" {
			t.Errorf("Get() = %q, %v, %v; want remote-value", v, ok, err)
		}
	})

	t.Run("primary fails", func(t *testing.T) {
		primary, local := newFakeBackend("remote"), newFakeBackend("local")
		primary.failGet = true
		local.values["k"] = "local-value"

		v, ok, err := NewTiered(primary, local).Get(ctx, "k")
		if err != nil || !ok || v != "local-value" {
			t.Errorf("Get() = %q, %v, %v; want local-value", v, ok, err)
		}
	})

	t.Run("primary missing key is not a failure", func(t *testing.T) {
		primary, local := newFakeBackend("remote"), newFakeBackend("local")
		local.values["k"] = "local-value"

		_, ok, err := NewTiered(primary, local).Get(ctx, "k")
		if err != nil || ok {
			t.Errorf("Get() found = %v, err = %v; want not found from primary", ok, err)
		}
	})

	t.Run("no primary", func(t *testing.T) {
		local := newFakeBackend("local")
		local.values["k"] = "local-value"

		v, _, err := NewTiered(nil, local).Get(ctx, "k")
		if err != nil || v != "local-value" {
			t.Errorf("Get() = %q, %v", v, err)
		}
	})
}

func TestTieredSet(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		noPrimary    bool
		primaryFails bool
		localFails   bool
		wantErr      bool
		wantLocal    bool
		wantPrimary  bool
	}{
		{name: "both succeed", wantLocal: true, wantPrimary: true},
		{name: "primary fails", primaryFails: true, wantLocal: true},
		{name: "local fails", localFails: true, wantPrimary: true},
		{name: "both fail", primaryFails: true, localFails: true, wantErr: true},
		{name: "local only", noPrimary: true, wantLocal: true},
		{name: "local only fails", noPrimary: true, localFails: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, local := newFakeBackend("remote"), newFakeBackend("local")
			primary.failSet = tt.primaryFails
			local.failSet = tt.localFails

			var tiered *Tiered
			if tt.noPrimary {
				tiered = NewTiered(nil, local)
			} else {
				tiered = NewTiered(primary, local)
			}

			err := tiered.Set(ctx, "k", "v")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrPersistence) {
				t.Errorf("Set() error = %v, want ErrPersistence", err)
			}
			if tt.wantErr && !errors.Is(err, errUnavailable) {
				t.Errorf("Set() error = %v, want the underlying cause", err)
			}
			if got := local.raw("k") == "v"; got != tt.wantLocal {
				t.Errorf("local written = %v, want %v", got, tt.wantLocal)
			}
			if got := primary.raw("k") == "v"; got != tt.wantPrimary {
				t.Errorf("primary written = %v, want %v", got, tt.wantPrimary)
			}
		})
	}
}

func TestTieredName(t *testing.T) {
	local := newFakeBackend("sqlite")
	if got := NewTiered(nil, local).Name(); got != "sqlite" {
		t.Errorf("Name() = %q, want sqlite", got)
	}
	if got := NewTiered(newFakeBackend("kvrest"), local).Name(); got != "kvrest+sqlite" {
		t.Errorf("Name() = %q, want kvrest+sqlite", got)
	}
}
