package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/metrics"
)

// Tiered serves reads from the primary backend and falls back to the
// secondary when the primary fails or is not configured. Writes go to the
// secondary first, as a backup, and then to the primary.
type Tiered struct {
	primary   Backend
	secondary Backend
}

// NewTiered composes the two tiers. primary may be nil; secondary may not.
func NewTiered(primary, secondary Backend) *Tiered {
	return &Tiered{primary: primary, secondary: secondary}
}

func (t *Tiered) Primary() Backend   { return t.primary }
func (t *Tiered) Secondary() Backend { return t.secondary }

// Init initializes both tiers. Only a secondary failure is fatal; an
// unreachable primary is logged and retried on every call.
func (t *Tiered) Init() error {
	if err := t.secondary.Init(); err != nil {
		return fmt.Errorf("failed to initialize %s store: %w", t.secondary.Name(), err)
	}
	if t.primary != nil {
		if err := t.primary.Init(); err != nil {
			logger.Warn("Primary store initialization failed, continuing with local store", "store", t.primary.Name(), "error", err)
		}
	}
	return nil
}

func (t *Tiered) Load() error {
	if err := t.secondary.Load(); err != nil {
		return err
	}
	if t.primary != nil {
		if err := t.primary.Load(); err != nil {
			logger.Warn("Primary store unavailable, reads will fall back to local store", "store", t.primary.Name(), "error", err)
		}
	}
	return nil
}

func (t *Tiered) Close() error {
	var errs []error
	if t.primary != nil {
		errs = append(errs, t.primary.Close())
	}
	errs = append(errs, t.secondary.Close())
	return errors.Join(errs...)
}

// Get never lets a primary error reach the caller; the secondary's answer
// is returned instead.
func (t *Tiered) Get(ctx context.Context, key string) (string, bool, error) {
	if t.primary != nil {
		value, found, err := t.primary.Get(ctx, key)
		if err == nil {
			return value, found, nil
		}
		logger.Warn("Error reading from primary store, falling back to local store", "store", t.primary.Name(), "key", key, "error", err)
		metrics.RecordFallback("get", t.primary.Name())
	}
	return t.secondary.Get(ctx, key)
}

// Set fails with ErrPersistence only when no tier accepted the write.
func (t *Tiered) Set(ctx context.Context, key, value string) error {
	secErr := t.secondary.Set(ctx, key, value)
	metrics.RecordWrite(t.secondary.Name(), secErr)

	if t.primary == nil {
		if secErr != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, secErr)
		}
		return nil
	}

	primErr := t.primary.Set(ctx, key, value)
	metrics.RecordWrite(t.primary.Name(), primErr)

	switch {
	case primErr != nil && secErr != nil:
		return fmt.Errorf("%w: %w", ErrPersistence, errors.Join(primErr, secErr))
	case primErr != nil:
		logger.Warn("Error saving to primary store, local backup is saved", "store", t.primary.Name(), "key", key, "error", primErr)
		metrics.RecordFallback("set", t.primary.Name())
	case secErr != nil:
		logger.Warn("Error saving local backup", "store", t.secondary.Name(), "key", key, "error", secErr)
	}
	return nil
}

func (t *Tiered) Name() string {
	if t.primary == nil {
		return t.secondary.Name()
	}
	return t.primary.Name() + "+" + t.secondary.Name()
}

func (t *Tiered) GetConfigPath() string {
	return t.secondary.GetConfigPath()
}
