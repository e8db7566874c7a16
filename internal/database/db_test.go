package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/go-json-shop/internal/config"
	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
)

func openTestDB(t *testing.T, path string) *database.DB {
	t.Helper()

	db, err := database.Open(&config.StoreConfig{Path: path})
	require.NoError(t, err)
	return db
}

func TestOpenMissingFile(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "shop.json"))

	err := db.View(context.Background(), func(doc *models.Document) error {
		assert.Empty(t, doc.Users)
		assert.Empty(t, doc.Products)
		assert.Empty(t, doc.Orders)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdatePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shop.json")

	db := openTestDB(t, path)
	err := db.Update(ctx, func(doc *models.Document) error {
		doc.Products = append(doc.Products, models.Product{
			ID:     "p1",
			Title:  "Widget",
			Price:  500,
			Images: map[string][]string{"Black": {"/public/images/widget.jpg"}},
			Stock:  map[string]int{"Black": 3},
		})
		return nil
	})
	require.NoError(t, err)

	reopened := openTestDB(t, path)
	err = reopened.View(ctx, func(doc *models.Document) error {
		require.Len(t, doc.Products, 1)
		assert.Equal(t, "Widget", doc.Products[0].Title)
		assert.Equal(t, 3, doc.Products[0].Stock["Black"])
		return nil
	})
	require.NoError(t, err)
}

func TestFailedUpdateChangesNothing(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shop.json")

	db := openTestDB(t, path)
	require.NoError(t, db.Update(ctx, func(doc *models.Document) error {
		doc.Users = append(doc.Users, models.User{ID: "u1", Email: "a@b.c"})
		return nil
	}))

	boom := errors.New("boom")
	err := db.Update(ctx, func(doc *models.Document) error {
		doc.Users = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = db.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Users, 1)
		return nil
	})
	require.NoError(t, err)

	reopened := openTestDB(t, path)
	err = reopened.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Users, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestOpenRejectsInvalidDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shop.json")

	db := openTestDB(t, path)
	require.NoError(t, db.Update(ctx, func(doc *models.Document) error {
		doc.Products = append(doc.Products, models.Product{
			ID:     "p1",
			Title:  "Widget",
			Images: map[string][]string{},
			Stock:  map[string]int{"Ghost Color": 2},
		})
		return nil
	}))

	_, err := database.Open(&config.StoreConfig{Path: path})
	assert.ErrorIs(t, err, database.ErrInvalidDocument)
}
