package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/safar/go-json-shop/internal/models"
)

// View runs fn with shared read access to the live document. Callers
// must copy out anything they keep past the call.
func (db *DB) View(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	return fn(db.doc)
}

// Update serializes all writers: fn mutates a copy of the document, and
// only after fn succeeds and the file rewrite succeeds does the copy
// replace the live document. An error from fn or from the write leaves
// both memory and file untouched.
func (db *DB) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	working, err := cloneDocument(db.doc)
	if err != nil {
		return fmt.Errorf("clone document: %w", err)
	}

	if err := fn(working); err != nil {
		return err
	}

	if err := writeDocument(db.path, working); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}

	db.doc = working

	return nil
}

func cloneDocument(doc *models.Document) (*models.Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	clone := &models.Document{}
	if err := json.Unmarshal(data, clone); err != nil {
		return nil, err
	}

	normalizeDocument(clone)

	return clone, nil
}
