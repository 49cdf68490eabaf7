// Package jsonfile is an on-device key-value tier kept in a single JSON
// document. Writes replace the file atomically.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aleksanderbl29/meal-planner/internal/logger"
)

const (
	fileVersion  = 1
	backupSuffix = ".bak"
	filePerm     = 0600
)

type document struct {
	Version int                        `json:"version"`
	Values  map[string]json.RawMessage `json:"values"`
}

type Store struct {
	path string

	mu     sync.Mutex
	values map[string]json.RawMessage
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init creates the file if it does not exist yet. An existing file is kept.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return s.read()
	}
	s.values = make(map[string]json.RawMessage)
	return s.write()
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		logger.Info("Local store not found, starting empty", "path", s.path)
		s.values = make(map[string]json.RawMessage)
		return nil
	}
	return s.read()
}

func (s *Store) Close() error { return nil }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		if err := s.read(); err != nil && !os.IsNotExist(err) {
			return "", false, err
		}
	}
	raw, ok := s.values[key]
	if !ok {
		return "", false, nil
	}
	return decodeValue(raw)
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		if err := s.read(); err != nil && !os.IsNotExist(err) {
			return err
		}
		if s.values == nil {
			s.values = make(map[string]json.RawMessage)
		}
	}

	raw, err := encodeValue(value)
	if err != nil {
		return err
	}
	previous, had := s.values[key]
	s.values[key] = raw
	if err := s.write(); err != nil {
		if had {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *Store) Name() string { return "jsonfile" }

func (s *Store) GetConfigPath() string {
	return s.path
}

// encodeValue embeds JSON objects and arrays verbatim so the file stays
// readable; any other value is stored as a JSON string.
func encodeValue(value string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(value))
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') && json.Valid(trimmed) {
		return json.RawMessage(value), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return data, nil
}

func decodeValue(raw json.RawMessage) (string, bool, error) {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, fmt.Errorf("failed to decode value: %w", err)
		}
		return s, true, nil
	}
	return string(raw), true, nil
}

// read loads the file into memory. Caller must hold s.mu.
func (s *Store) read() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]json.RawMessage)
	}
	s.values = doc.Values
	return nil
}

// write replaces the file through a temp file and a rename, keeping the
// previous version next to it. Caller must hold s.mu.
func (s *Store) write() error {
	data, err := json.Marshal(document{Version: fileVersion, Values: s.values})
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := copyFile(s.path, s.path+backupSuffix); err != nil {
			logger.Warn("Failed to create backup of local store", "path", s.path, "error", err)
		}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, filePerm)
}
