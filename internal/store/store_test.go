package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/safar/go-json-shop/internal/config"
	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
	"github.com/safar/go-json-shop/internal/session"
	"github.com/safar/go-json-shop/internal/store"
)

// newTestDB opens a store on a throwaway file and seeds it with the
// demo admin and catalog.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(&config.StoreConfig{Path: filepath.Join(t.TempDir(), "shop.json")})
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), db))
	return db
}

func newTestSession() *session.Session {
	return &session.Session{
		Cart:     make(map[string]*models.CartLine),
		Wishlist: make(map[string]bool),
	}
}

func loginTestUser(t *testing.T, db *database.DB, sess *session.Session) {
	t.Helper()

	user, err := store.Signup(context.Background(), db, "Test Buyer", "buyer@example.com", "secret123")
	require.NoError(t, err)
	sess.User = &models.Identity{ID: user.ID, Name: user.Name, Email: user.Email}
}
