package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
	"github.com/safar/go-json-shop/internal/session"
)

// Checkout turns the session cart into an immutable order. Stock is
// re-validated for every line inside the store update, so the order
// either decrements all of its stock or none of it; the cart survives
// a failed checkout and is cleared only on success.
func Checkout(ctx context.Context, db *database.DB, sess *session.Session) (*models.Order, error) {
	if sess.User == nil {
		return nil, database.ErrUnauthorized
	}
	if len(sess.Cart) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", database.ErrInvalidInput)
	}

	lines := SortedCartLines(sess)

	order := &models.Order{
		ID:        uuid.NewString(),
		UserID:    sess.User.ID,
		CreatedAt: time.Now().UTC(),
	}

	err := db.Update(ctx, func(doc *models.Document) error {
		total := decimal.Zero

		for _, line := range lines {
			var product *models.Product
			for i := range doc.Products {
				if doc.Products[i].ID == line.ProductID {
					product = &doc.Products[i]
					break
				}
			}
			if product == nil {
				return fmt.Errorf("%s: %w", line.Title, database.ErrProductNotFound)
			}

			if product.Stock[line.Color] < line.Quantity {
				return fmt.Errorf("%s (%s): %w", line.Title, line.Color, database.ErrInsufficientStock)
			}
			product.Stock[line.Color] -= line.Quantity

			order.Items = append(order.Items, models.OrderLine{
				ProductID: line.ProductID,
				Title:     line.Title,
				Price:     line.Price,
				Quantity:  line.Quantity,
				Color:     line.Color,
			})
			total = total.Add(decimal.NewFromInt(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order.Total = total.IntPart()
		doc.Orders = append(doc.Orders, *order)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sess.Cart = make(map[string]*models.CartLine)

	return order, nil
}

// ListOrders returns every order, most recent first.
func ListOrders(ctx context.Context, db *database.DB) ([]models.Order, error) {
	var orders []models.Order

	err := db.View(ctx, func(doc *models.Document) error {
		for i := len(doc.Orders) - 1; i >= 0; i-- {
			o := doc.Orders[i]
			o.Items = append([]models.OrderLine(nil), o.Items...)
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

// GetOrder looks an order up by id.
func GetOrder(ctx context.Context, db *database.DB, id string) (*models.Order, error) {
	var order *models.Order

	err := db.View(ctx, func(doc *models.Document) error {
		for i := range doc.Orders {
			if doc.Orders[i].ID == id {
				o := doc.Orders[i]
				o.Items = append([]models.OrderLine(nil), o.Items...)
				order = &o
				return nil
			}
		}
		return database.ErrOrderNotFound
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
