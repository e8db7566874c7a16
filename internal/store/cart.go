package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
	"github.com/safar/go-json-shop/internal/session"
)

// AddToCart puts qty units of a product color into the session cart.
// An empty color falls back to the product's default variant. The
// requested quantity is validated against current stock; on
// ErrInsufficientStock the cart is left untouched.
func AddToCart(ctx context.Context, db *database.DB, sess *session.Session, productID, color string, qty int) (*models.CartLine, error) {
	product, err := FindProduct(ctx, db, productID)
	if err != nil {
		return nil, err
	}

	if qty < 1 {
		qty = 1
	}

	if color == "" {
		color = firstColor(product)
	}

	available := product.Stock[color]
	if qty > available {
		return nil, fmt.Errorf("%s (%s): %w", product.Title, color, database.ErrInsufficientStock)
	}

	key := models.CartKey(productID, color)
	line, ok := sess.Cart[key]
	if !ok {
		line = &models.CartLine{
			ProductID: productID,
			Color:     color,
			Title:     product.Title,
			Price:     product.Price,
		}
		if urls := product.Images[color]; len(urls) > 0 {
			line.Image = urls[0]
		}
		sess.Cart[key] = line
	}
	line.Quantity += qty

	return line, nil
}

// UpdateCart applies a map of line key to new quantity, as posted by
// the cart form. Anything that does not parse as a positive integer
// deletes the line; keys without a matching line are ignored.
func UpdateCart(sess *session.Session, updates map[string]string) {
	for key, raw := range updates {
		qty, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || qty <= 0 {
			delete(sess.Cart, key)
			continue
		}
		if line, ok := sess.Cart[key]; ok {
			line.Quantity = qty
		}
	}
}

// CartTotal sums price times quantity over all lines, in minor units.
func CartTotal(sess *session.Session) int64 {
	var total int64
	for _, line := range sess.Cart {
		total += line.Subtotal()
	}
	return total
}

// SortedCartLines returns the cart in stable key order for rendering
// and checkout.
func SortedCartLines(sess *session.Session) []*models.CartLine {
	lines := make([]*models.CartLine, 0, len(sess.Cart))
	for _, line := range sess.Cart {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Key() < lines[j].Key()
	})
	return lines
}

// WishlistProducts resolves the session wishlist against the catalog,
// silently dropping ids that no longer resolve.
func WishlistProducts(ctx context.Context, db *database.DB, sess *session.Session) ([]models.Product, error) {
	ids := make([]string, 0, len(sess.Wishlist))
	for id := range sess.Wishlist {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var products []models.Product
	err := db.View(ctx, func(doc *models.Document) error {
		for _, id := range ids {
			for i := range doc.Products {
				if doc.Products[i].ID == id {
					products = append(products, cloneProduct(doc.Products[i]))
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve wishlist: %w", err)
	}

	return products, nil
}
