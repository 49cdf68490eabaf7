package storage

import (
	"context"
	"errors"
	"sync"
)

var errUnavailable = errors.New("store unavailable")

// fakeBackend is an in-memory Backend whose reads and writes can be made to fail.
type fakeBackend struct {
	mu      sync.Mutex
	name    string
	values  map[string]string
	failGet bool
	failSet bool
	sets    int
}

func newFakeBackend(name string) *fakeBackend {
	return &fakeBackend{name: name, values: make(map[string]string)}
}

func (f *fakeBackend) Init() error  { return nil }
func (f *fakeBackend) Load() error  { return nil }
func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return "", false, errUnavailable
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeBackend) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errUnavailable
	}
	f.sets++
	f.values[key] = value
	return nil
}

func (f *fakeBackend) Name() string          { return f.name }
func (f *fakeBackend) GetConfigPath() string { return f.name }

func (f *fakeBackend) raw(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key]
}

func (f *fakeBackend) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}
