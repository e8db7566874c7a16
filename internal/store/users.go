package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
)

// Signup registers a new account. Emails must be unique (exact match)
// and passwords are stored only as bcrypt hashes. New accounts are
// never admins.
func Signup(ctx context.Context, db *database.DB, name, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", database.ErrInvalidInput)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "User"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      false,
	}

	err = db.Update(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				return database.ErrEmailTaken
			}
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies credentials and returns the identity that goes into
// the session. Unknown emails and bad passwords are indistinguishable
// to the caller.
func Login(ctx context.Context, db *database.DB, email, password string) (*models.Identity, error) {
	var user models.User
	found := false

	err := db.View(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				user = u
				found = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !found {
		return nil, database.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, database.ErrInvalidCredentials
	}

	return &models.Identity{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}
