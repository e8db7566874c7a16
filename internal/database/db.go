package database

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/safar/go-json-shop/internal/config"
	"github.com/safar/go-json-shop/internal/models"
)

// DB keeps the whole store document in memory and rewrites the backing
// JSON file on every committed update.
type DB struct {
	path string
	mu   sync.RWMutex
	doc  *models.Document
}

func Open(cfg *config.StoreConfig) (*DB, error) {
	doc, err := loadDocument(cfg.Path)
	if err != nil {
		return nil, err
	}

	return &DB{path: cfg.Path, doc: doc}, nil
}

func loadDocument(path string) (*models.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Document{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, err
	}

	normalizeDocument(&doc)

	return &doc, nil
}

func writeDocument(path string, doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store document: %w", err)
	}

	return os.WriteFile(path, data, 0666)
}

// validateDocument rejects records that would otherwise surface as
// silent zero-value fallbacks deeper in the stack.
func validateDocument(doc *models.Document) error {
	for _, u := range doc.Users {
		if u.ID == "" || u.Email == "" {
			return fmt.Errorf("user %q: missing id or email: %w", u.Email, ErrInvalidDocument)
		}
	}

	for _, p := range doc.Products {
		if p.ID == "" || p.Title == "" {
			return fmt.Errorf("product %q: missing id or title: %w", p.ID, ErrInvalidDocument)
		}
		if p.Price < 0 {
			return fmt.Errorf("product %q: negative price: %w", p.ID, ErrInvalidDocument)
		}
		for color, count := range p.Stock {
			if count < 0 {
				return fmt.Errorf("product %q: negative stock for %q: %w", p.ID, color, ErrInvalidDocument)
			}
			if _, ok := p.Images[color]; !ok {
				return fmt.Errorf("product %q: stock color %q has no images: %w", p.ID, color, ErrInvalidDocument)
			}
		}
	}

	return nil
}

func normalizeDocument(doc *models.Document) {
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Orders == nil {
		doc.Orders = []models.Order{}
	}
	if doc.Products == nil {
		doc.Products = []models.Product{}
	}
	for i := range doc.Products {
		p := &doc.Products[i]
		if p.Images == nil {
			p.Images = map[string][]string{}
		}
		if p.Stock == nil {
			p.Stock = map[string]int{}
		}
		if p.Reviews == nil {
			p.Reviews = []models.Review{}
		}
	}
}
