// Package backup keeps timestamped JSON snapshots of the meal collection
// next to the local store, and restores them into any storage backend.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
)

const (
	// MaxBackups is the number of snapshots kept after rotation
	MaxBackups = 14
	// BackupDirName is the directory below the config dir holding snapshots
	BackupDirName    = "backups"
	BackupFilePrefix = "meals-"
	BackupFileSuffix = ".json"

	timestampFormat = "20060102-150405"
)

var ErrNoMeals = errors.New("no meal data to back up")

// BackupInfo describes one snapshot file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists and restores snapshots for one backend
type Manager struct {
	backend   storage.Backend
	backupDir string
	// Now is the clock used to name snapshots.
	Now func() time.Time
}

// NewManager stores snapshots in configDir/backups.
func NewManager(backend storage.Backend, configDir string) *Manager {
	return &Manager{
		backend:   backend,
		backupDir: filepath.Join(configDir, BackupDirName),
		Now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes the current meal collection to a new snapshot and
// rotates old ones.
func (m *Manager) CreateBackup(ctx context.Context) (string, error) {
	return m.createBackup(ctx, false)
}

// skipRotation keeps every snapshot, used for the safety copy taken by
// RestoreBackup.
func (m *Manager) createBackup(ctx context.Context, skipRotation bool) (string, error) {
	raw, found, err := m.backend.Get(ctx, constants.MealsKey)
	if err != nil {
		return "", fmt.Errorf("failed to read meals from %s store: %w", m.backend.Name(), err)
	}
	if !found {
		return "", ErrNoMeals
	}
	if _, err := decode([]byte(raw)); err != nil {
		return "", fmt.Errorf("refusing to back up invalid meal data: %w", err)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := writeFile(backupPath, []byte(raw)); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// The snapshot itself succeeded
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextPath picks an unused snapshot name for the current second, adding a
// counter when several snapshots are taken within it.
func (m *Manager) nextPath() (string, error) {
	timestamp := m.Now().Format(timestampFormat)
	path := filepath.Join(m.backupDir, BackupFilePrefix+timestamp+BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, timestamp, counter, BackupFileSuffix))
	}
}

// ListBackups returns every snapshot, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		timestamp, counter, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path: filepath.Join(m.backupDir, entry.Name()),
			// Order snapshots from the same second by their counter
			Timestamp: timestamp.Add(time.Duration(counter) * time.Millisecond),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName extracts the timestamp and collision counter from a snapshot
// file name.
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), BackupFileSuffix)

	counter := 0
	if len(stamp) > len(timestampFormat) {
		if _, err := fmt.Sscanf(stamp[len(timestampFormat):], "-%d", &counter); err != nil {
			return time.Time{}, 0, false
		}
		stamp = stamp[:len(timestampFormat)]
	}

	t, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return t, counter, true
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the stored meal collection with a snapshot. The
// current collection is snapshotted first when there is one. It returns
// the restored meals.
func (m *Manager) RestoreBackup(ctx context.Context, backupPath string) ([]models.Meal, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}
	meals, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	current, err := m.createBackup(ctx, true)
	switch {
	case errors.Is(err, ErrNoMeals):
	case err != nil:
		return nil, fmt.Errorf("failed to back up current meals before restore: %w", err)
	default:
		logger.Info("Backed up current meals before restore", "path", current)
	}

	if err := m.backend.Set(ctx, constants.MealsKey, string(data)); err != nil {
		return nil, fmt.Errorf("failed to restore meals: %w", err)
	}
	return meals, nil
}

// decode checks that data is a valid meal collection with unique ids.
func decode(data []byte) ([]models.Meal, error) {
	var meals []models.Meal
	if err := json.Unmarshal(data, &meals); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(meals))
	for _, meal := range meals {
		if meal.ID == "" {
			return nil, fmt.Errorf("meal %q has no id", meal.Name)
		}
		if seen[meal.ID] {
			return nil, fmt.Errorf("duplicate meal id %s", meal.ID)
		}
		seen[meal.ID] = true
		if err := meal.Validate(); err != nil {
			return nil, err
		}
	}
	return meals, nil
}

// writeFile writes through a temporary file and a rename so a partial
// snapshot is never left behind.
func writeFile(path string, data []byte) error {
	tempPath := path + ".tmp"
	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tempPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}
	return os.Rename(tempPath, path)
}
