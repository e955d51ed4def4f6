package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileBackend stores every key in one JSON object on disk. Writes go through a
// temp file and a rename so a crash never leaves a half-written profile.
type FileBackend struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFileBackend opens the profile at path. A nil logger discards messages.
func NewFileBackend(path string, logger *zap.Logger) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("file backend requires a path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileBackend{path: path, logger: logger}, nil
}

func (f *FileBackend) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	return values, nil
}

func (f *FileBackend) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".vidsum-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

func (f *FileBackend) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// readForWrite is read, except that an undecodable profile is moved to
// <path>.corrupt and replaced by an empty one.
func (f *FileBackend) readForWrite() (map[string]string, error) {
	values, err := f.read()
	if !errors.Is(err, ErrCorrupt) {
		return values, err
	}

	backup := f.path + ".corrupt"
	if renameErr := os.Rename(f.path, backup); renameErr != nil {
		return nil, fmt.Errorf("failed to move corrupt storage file aside: %w", renameErr)
	}
	f.logger.Warn("moved corrupt storage file aside",
		zap.String("path", f.path),
		zap.String("backup", backup),
		zap.Error(err),
	)
	return map[string]string{}, nil
}

func (f *FileBackend) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileBackend) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(values)
}

func (f *FileBackend) Close() error {
	return nil
}
