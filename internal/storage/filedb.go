package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"vending-bot/internal/domain"
)

// FileDB persists the whole Document as a single JSON file. Handlers reload
// the document on every operation and a mutating operation rewrites the file
// wholesale; the mutex serializes the load/mutate/save cycles of concurrent
// handlers so a late save cannot clobber an earlier one.
type FileDB struct {
	mu   sync.Mutex
	path string
}

// Open prepares a FileDB at path, creating the parent directory if needed.
// The file itself is not created until the first save.
func Open(path string) (*FileDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &FileDB{path: path}, nil
}

// Load reads the backing file. A missing file is equivalent to an empty
// document and writes nothing.
func (db *FileDB) Load() (*domain.Document, error) {
	b, err := os.ReadFile(db.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	doc := domain.NewDocument()
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", db.path, err)
	}
	return doc, nil
}

// Save rewrites the backing file with the full document. The write goes to a
// temp file first so a crash mid-write cannot truncate existing state.
func (db *FileDB) Save(doc *domain.Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := db.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, db.path); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// View runs fn against a freshly loaded document. fn must not mutate it.
func (db *FileDB) View(ctx context.Context, fn func(*domain.Document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := db.Load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs fn against a freshly loaded document and saves the result only
// when fn returns nil, so a failed validation never reaches the file.
func (db *FileDB) Update(ctx context.Context, fn func(*domain.Document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := db.Load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return db.Save(doc)
}
