// Package storage provides the key/value backends behind the summary store.
// Values are opaque strings; callers own the encoding.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrCorrupt means the backend's own data could not be decoded.
	ErrCorrupt = errors.New("storage data is corrupt")
)

type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key joins parts with ":" behind an optional prefix.
func Key(prefix string, parts ...string) string {
	if prefix == "" {
		return strings.Join(parts, ":")
	}
	return prefix + ":" + strings.Join(parts, ":")
}

// Open builds the backend named by kind. location is a file path for "file"
// and "sqlite" and a redis:// URL for "redis"; "memory" ignores it.
func Open(kind, location string, logger *zap.Logger) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "file":
		return NewFileBackend(location, logger)
	case "sqlite":
		return NewSQLiteBackend(location)
	case "redis":
		return NewRedisBackend(location)
	case "memory":
		return NewMemoryBackend(0), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", kind)
	}
}
