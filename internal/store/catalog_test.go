package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
	"github.com/safar/go-json-shop/internal/store"
)

func TestFindProduct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		product, err := store.FindProduct(ctx, db, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Wireless Headphones", product.Title)
		assert.Equal(t, int64(1999), product.Price)
		assert.Equal(t, 12, product.Stock["Black Sabre"])
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := store.FindProduct(ctx, db, "nope")
		assert.ErrorIs(t, err, database.ErrProductNotFound)
	})
}

func TestSearchProducts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t.Run("Empty query returns all", func(t *testing.T) {
		products, err := store.SearchProducts(ctx, db, "")
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("Case-insensitive substring on title", func(t *testing.T) {
		products, err := store.SearchProducts(ctx, db, "wIrElEsS")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "p1", products[0].ID)
	})

	t.Run("Matches description too", func(t *testing.T) {
		products, err := store.SearchProducts(ctx, db, "pro gamers")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "p3", products[0].ID)
	})

	t.Run("No match", func(t *testing.T) {
		products, err := store.SearchProducts(ctx, db, "toaster")
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestAverageRating(t *testing.T) {
	p := &models.Product{Reviews: []models.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 3},
	}}
	assert.InDelta(t, 4.0, store.AverageRating(p), 0.0001)

	assert.Zero(t, store.AverageRating(&models.Product{}))
}

func TestSortedReviews(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &models.Product{Reviews: []models.Review{
		{ID: "r1", Rating: 2, CreatedAt: base},
		{ID: "r2", Rating: 5, CreatedAt: base.Add(time.Hour)},
		{ID: "r3", Rating: 3, CreatedAt: base.Add(2 * time.Hour)},
	}}

	t.Run("Highest", func(t *testing.T) {
		got := store.SortedReviews(p, store.ReviewSortHighest)
		assert.Equal(t, []int{5, 3, 2}, ratings(got))
	})

	t.Run("Lowest", func(t *testing.T) {
		got := store.SortedReviews(p, store.ReviewSortLowest)
		assert.Equal(t, []int{2, 3, 5}, ratings(got))
	})

	t.Run("Newest is default", func(t *testing.T) {
		got := store.SortedReviews(p, "")
		assert.Equal(t, []string{"r3", "r2", "r1"}, ids(got))
	})

	t.Run("Ties keep insertion order", func(t *testing.T) {
		tied := &models.Product{Reviews: []models.Review{
			{ID: "first", Rating: 4, CreatedAt: base},
			{ID: "second", Rating: 4, CreatedAt: base},
			{ID: "third", Rating: 1, CreatedAt: base},
		}}
		got := store.SortedReviews(tied, store.ReviewSortHighest)
		assert.Equal(t, []string{"first", "second", "third"}, ids(got))
	})

	t.Run("Original order untouched", func(t *testing.T) {
		store.SortedReviews(p, store.ReviewSortHighest)
		assert.Equal(t, []string{"r1", "r2", "r3"}, ids(p.Reviews))
	})
}

func TestAddReview(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t.Run("Appends and persists", func(t *testing.T) {
		review, err := store.AddReview(ctx, db, "p3", "Asha", 4, "Clicks nicely")
		require.NoError(t, err)
		assert.NotEmpty(t, review.ID)

		product, err := store.FindProduct(ctx, db, "p3")
		require.NoError(t, err)
		require.Len(t, product.Reviews, 1)
		assert.Equal(t, "Asha", product.Reviews[0].User)
		assert.Equal(t, 4, product.Reviews[0].Rating)
	})

	t.Run("Clamps rating", func(t *testing.T) {
		review, err := store.AddReview(ctx, db, "p3", "Asha", 99, "")
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)

		review, err = store.AddReview(ctx, db, "p3", "Asha", -1, "")
		require.NoError(t, err)
		assert.Equal(t, 1, review.Rating)
	})

	t.Run("Unknown product", func(t *testing.T) {
		_, err := store.AddReview(ctx, db, "nope", "Asha", 3, "")
		assert.ErrorIs(t, err, database.ErrProductNotFound)
	})
}

func TestAddProduct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t.Run("Round-trips through FindProduct", func(t *testing.T) {
		created, err := store.AddProduct(ctx, db, "Mechanical Keyboard", 4599, "Clacky.",
			`{"White": ["/public/images/kb1.jpg"], "Black": ["/public/images/kb2.jpg"]}`)
		require.NoError(t, err)

		found, err := store.FindProduct(ctx, db, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mechanical Keyboard", found.Title)
		assert.Equal(t, int64(4599), found.Price)
		assert.Equal(t, "Clacky.", found.Description)
		assert.Equal(t, store.DefaultStock, found.Stock["White"])
		assert.Equal(t, store.DefaultStock, found.Stock["Black"])
		assert.Empty(t, found.Reviews)
	})

	t.Run("Malformed images", func(t *testing.T) {
		_, err := store.AddProduct(ctx, db, "Broken", 100, "", `{"White": "not-a-list"`)
		assert.ErrorIs(t, err, database.ErrInvalidInput)
	})

	t.Run("No color variants", func(t *testing.T) {
		_, err := store.AddProduct(ctx, db, "Colorless", 100, "", `{}`)
		assert.ErrorIs(t, err, database.ErrInvalidInput)
	})

	t.Run("Missing title", func(t *testing.T) {
		_, err := store.AddProduct(ctx, db, "  ", 100, "", `{"White": []}`)
		assert.ErrorIs(t, err, database.ErrInvalidInput)
	})
}

func ratings(reviews []models.Review) []int {
	out := make([]int, len(reviews))
	for i, r := range reviews {
		out[i] = r.Rating
	}
	return out
}

func ids(reviews []models.Review) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.ID
	}
	return out
}
