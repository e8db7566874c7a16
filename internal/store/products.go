package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
)

const (
	ReviewSortNewest  = "newest"
	ReviewSortHighest = "highest"
	ReviewSortLowest  = "lowest"
)

// DefaultStock is seeded for every color variant of an admin-created
// product.
const DefaultStock = 5

func FindProduct(ctx context.Context, db *database.DB, id string) (*models.Product, error) {
	var product *models.Product

	err := db.View(ctx, func(doc *models.Document) error {
		for i := range doc.Products {
			if doc.Products[i].ID == id {
				p := cloneProduct(doc.Products[i])
				product = &p
				return nil
			}
		}
		return database.ErrProductNotFound
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// SearchProducts matches a case-insensitive substring against title and
// description. An empty query returns the whole catalog.
func SearchProducts(ctx context.Context, db *database.DB, query string) ([]models.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	var products []models.Product
	err := db.View(ctx, func(doc *models.Document) error {
		for i := range doc.Products {
			p := doc.Products[i]
			if q == "" || strings.Contains(strings.ToLower(p.Title+" "+p.Description), q) {
				products = append(products, cloneProduct(p))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	return products, nil
}

// AverageRating is the arithmetic mean of review ratings, 0 when there
// are none.
func AverageRating(p *models.Product) float64 {
	if len(p.Reviews) == 0 {
		return 0
	}

	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}

	return float64(sum) / float64(len(p.Reviews))
}

// SortedReviews returns a copy ordered by sortKey. The sort is stable:
// ties keep insertion order. Unknown keys fall back to newest-first.
func SortedReviews(p *models.Product, sortKey string) []models.Review {
	reviews := append([]models.Review(nil), p.Reviews...)

	switch sortKey {
	case ReviewSortHighest:
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].Rating > reviews[j].Rating
		})
	case ReviewSortLowest:
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].Rating < reviews[j].Rating
		})
	default:
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		})
	}

	return reviews
}

// AddReview appends a review to a product. Ratings outside 1..5 are
// clamped. Reviews are immutable once stored.
func AddReview(ctx context.Context, db *database.DB, productID, author string, rating int, comment string) (*models.Review, error) {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}

	review := models.Review{
		ID:        uuid.NewString(),
		User:      author,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}

	err := db.Update(ctx, func(doc *models.Document) error {
		for i := range doc.Products {
			if doc.Products[i].ID == productID {
				doc.Products[i].Reviews = append(doc.Products[i].Reviews, review)
				return nil
			}
		}
		return database.ErrProductNotFound
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// AddProduct creates a catalog entry from the admin form. imagesJSON is
// a serialized map of color variant to image URLs; every declared color
// is seeded with DefaultStock units.
func AddProduct(ctx context.Context, db *database.DB, title string, price int64, description, imagesJSON string) (*models.Product, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", database.ErrInvalidInput)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", database.ErrInvalidInput)
	}

	var images map[string][]string
	if err := json.Unmarshal([]byte(imagesJSON), &images); err != nil {
		return nil, fmt.Errorf("parse images: %v: %w", err, database.ErrInvalidInput)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("at least one color variant is required: %w", database.ErrInvalidInput)
	}

	stock := make(map[string]int, len(images))
	for color := range images {
		stock[color] = DefaultStock
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Title:       title,
		Price:       price,
		Description: description,
		Images:      images,
		Stock:       stock,
		Reviews:     []models.Review{},
	}

	err := db.Update(ctx, func(doc *models.Document) error {
		doc.Products = append(doc.Products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// firstColor picks the deterministic default variant: the
// lexicographically first image key.
func firstColor(p *models.Product) string {
	colors := make([]string, 0, len(p.Images))
	for color := range p.Images {
		colors = append(colors, color)
	}
	if len(colors) == 0 {
		return ""
	}
	sort.Strings(colors)
	return colors[0]
}

func cloneProduct(p models.Product) models.Product {
	images := make(map[string][]string, len(p.Images))
	for color, urls := range p.Images {
		images[color] = append([]string(nil), urls...)
	}
	p.Images = images

	stock := make(map[string]int, len(p.Stock))
	for color, count := range p.Stock {
		stock[color] = count
	}
	p.Stock = stock

	p.Reviews = append([]models.Review(nil), p.Reviews...)
	p.Tags = append([]string(nil), p.Tags...)

	return p
}
