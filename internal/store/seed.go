package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
)

const (
	seedAdminEmail    = "admin@demo.com"
	seedAdminPassword = "admin123"
)

// Seed fills an empty store with the demo admin account and catalog so
// a fresh checkout works out of the box. Existing data is left alone.
func Seed(ctx context.Context, db *database.DB) error {
	return db.Update(ctx, func(doc *models.Document) error {
		if !hasUser(doc, seedAdminEmail) {
			hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			doc.Users = append(doc.Users, models.User{
				ID:           uuid.NewString(),
				Name:         "Admin",
				Email:        seedAdminEmail,
				PasswordHash: string(hash),
				IsAdmin:      true,
			})
		}

		if len(doc.Products) == 0 {
			doc.Products = seedProducts()
		}

		return nil
	})
}

func hasUser(doc *models.Document, email string) bool {
	for _, u := range doc.Users {
		if u.Email == email {
			return true
		}
	}
	return false
}

func seedProducts() []models.Product {
	now := time.Now().UTC()

	return []models.Product{
		{
			ID:          "p1",
			Title:       "Wireless Headphones",
			Price:       1999,
			Description: "Comfortable wireless headphones with deep bass and long battery life.",
			Images: map[string][]string{
				"Black Sabre": {
					"/public/images/boat_blacksabre.jpg",
					"/public/images/boat_blacksabre2.jpg",
					"/public/images/boat_blacksabre3.jpg",
				},
				"Bold Blue": {
					"/public/images/boat_boldblue.jpg",
					"/public/images/boat_boldblue2.jpg",
					"/public/images/boat_boldblue3.jpg",
				},
			},
			Stock: map[string]int{"Black Sabre": 12, "Bold Blue": 5},
			Reviews: []models.Review{
				{ID: uuid.NewString(), User: "Ravi", Rating: 5, Comment: "Great sound and comfort", CreatedAt: now},
			},
			Tags: []string{"audio", "headphones"},
		},
		{
			ID:          "p2",
			Title:       "Smart Watch",
			Price:       3499,
			Description: "Track your fitness, notifications, and health metrics.",
			Images: map[string][]string{
				"Space Blue": {
					"/public/images/noise_swspaceblue.jpg",
					"/public/images/noise_swcommon.jpg",
					"/public/images/noise_swcommon2.jpg",
					"/public/images/noise_swcommon3.jpg",
				},
				"Rose Pink": {
					"/public/images/noise_swrosepink.jpg",
					"/public/images/noise_swcommon.jpg",
					"/public/images/noise_swcommon2.jpg",
					"/public/images/noise_swcommon3.jpg",
				},
				"Deep Wine": {
					"/public/images/noise_swdeepwine.jpg",
					"/public/images/noise_swcommon.jpg",
					"/public/images/noise_swcommon2.jpg",
					"/public/images/noise_swcommon3.jpg",
				},
			},
			Stock: map[string]int{"Space Blue": 8, "Rose Pink": 3, "Deep Wine": 1},
			Reviews: []models.Review{
				{ID: uuid.NewString(), User: "Neha", Rating: 4, Comment: "Looks premium and works well", CreatedAt: now},
			},
			Tags: []string{"wearable", "smartwatch"},
		},
		{
			ID:          "p3",
			Title:       "Gaming Mouse",
			Price:       1299,
			Description: "High precision RGB gaming mouse for pro gamers.",
			Images: map[string][]string{
				"Black": {
					"/public/images/logi_mouse1.jpg",
					"/public/images/logi_mouse2.jpg",
					"/public/images/logi_mouse3.jpg",
				},
			},
			Stock:   map[string]int{"Black": 20},
			Reviews: []models.Review{},
			Tags:    []string{"gaming", "mouse"},
		},
	}
}
