package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrMalformed reports a backing document that exists but cannot be parsed
// as a JSON array. This is fatal for the operation; an absent or empty
// document is not an error.
var ErrMalformed = errors.New("malformed collection document")

// Backend is a durable key-value byte store addressed by collection name.
// The default implementation is the filesystem, but repositories only depend
// on this contract.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// FileBackend stores each collection as a <name>.json file under a single
// data directory. Writes truncate in place; there is no rename step, so a
// crash mid-write can corrupt the document.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

func (b *FileBackend) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", name, err)
	}
	return data, nil
}

func (b *FileBackend) Write(_ context.Context, name string, data []byte) error {
	if err := os.WriteFile(b.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	return nil
}

// Collection maps one named collection to a whole JSON-array document.
type Collection[T any] struct {
	backend Backend
	name    string
}

func NewCollection[T any](backend Backend, name string) *Collection[T] {
	return &Collection[T]{backend: backend, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

// Load returns the full collection. An absent or empty document yields an
// empty slice with no error.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.backend.Read(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the entire backing document with the given entities.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.name, err)
	}
	return c.backend.Write(ctx, c.name, data)
}
