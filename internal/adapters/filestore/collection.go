package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/SscSPs/todo_api/internal/middleware"
	"github.com/SscSPs/todo_api/internal/platform/metrics"
)

// Collection is one entity collection persisted as a single JSON array document.
//
// Reads never fail: a missing, unreadable or corrupt document is logged and
// treated as empty. Writes replace the whole document and return any IO error.
// Update holds the collection lock across load, mutate and save so concurrent
// writers in this process cannot lose each other's changes.
type Collection[T any] struct {
	name string
	path string
	mu   sync.RWMutex
}

// OpenCollection returns the collection stored in dir/file, creating the
// directory and an empty document on first use.
func OpenCollection[T any](dir, file string) (*Collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, file)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &Collection[T]{name: file, path: path}, nil
}

// Name is the document's file name, used as the collection label in logs and metrics.
func (c *Collection[T]) Name() string { return c.name }

// Load returns every record in the collection.
func (c *Collection[T]) Load(ctx context.Context) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load(ctx)
}

// Save overwrites the collection with records.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Update loads the collection, hands it to mutate and saves what mutate
// returns. Nothing is written when mutate fails.
func (c *Collection[T]) Update(ctx context.Context, mutate func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := mutate(c.load(ctx))
	if err != nil {
		return err
	}
	return c.save(ctx, records)
}

func (c *Collection[T]) load(ctx context.Context) []T {
	logger := middleware.GetLoggerFromCtx(ctx)

	data, err := os.ReadFile(c.path)
	if err != nil {
		logger.Error("Failed to read collection", slog.String("collection", c.name), slog.String("error", err.Error()))
		metrics.StoreReadFailures.WithLabelValues(c.name).Inc()
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Error("Failed to parse collection", slog.String("collection", c.name), slog.String("error", err.Error()))
		metrics.StoreReadFailures.WithLabelValues(c.name).Inc()
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		metrics.StoreWrites.WithLabelValues(c.name, "error").Inc()
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		metrics.StoreWrites.WithLabelValues(c.name, "error").Inc()
		middleware.GetLoggerFromCtx(ctx).Error("Failed to write collection", slog.String("collection", c.name), slog.String("error", err.Error()))
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	metrics.StoreWrites.WithLabelValues(c.name, "ok").Inc()
	return nil
}
