package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the whole persisted state: one JSON file holding every
// collection the shop knows about.
type Document struct {
	Users    []User    `json:"users"`
	Products []Product `json:"products"`
	Orders   []Order   `json:"orders"`
}

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	IsAdmin      bool   `json:"isAdmin"`
}

// Identity is the slice of a user that lives in a session. The password
// hash never leaves the store.
type Identity struct {
	ID      string
	Name    string
	Email   string
	IsAdmin bool
}

// Product prices are integer minor currency units (1999 = 19.99).
// Images and Stock are keyed by color variant; every stock key must
// also be an images key.
type Product struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Price       int64               `json:"price"`
	Description string              `json:"desc"`
	Images      map[string][]string `json:"images"`
	Stock       map[string]int      `json:"stock"`
	Reviews     []Review            `json:"reviews"`
	Tags        []string            `json:"tags,omitempty"`
}

func (p Product) DisplayPrice() string {
	return FormatMinor(p.Price)
}

// Review is append-only: never edited or deleted once created.
type Review struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartLine is session state, keyed by CartKey(ProductID, Color). Title,
// Price and Image are denormalized snapshots taken at add time.
type CartLine struct {
	ProductID string
	Color     string
	Title     string
	Price     int64
	Image     string
	Quantity  int
}

func (l CartLine) Key() string {
	return CartKey(l.ProductID, l.Color)
}

func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

func (l CartLine) DisplayPrice() string {
	return FormatMinor(l.Price)
}

func (l CartLine) DisplaySubtotal() string {
	return FormatMinor(l.Subtotal())
}

type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Items     []OrderLine `json:"items"`
	Total     int64       `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (o Order) DisplayTotal() string {
	return FormatMinor(o.Total)
}

type OrderLine struct {
	ProductID string `json:"id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"qty"`
	Color     string `json:"color"`
}

func (l OrderLine) DisplayPrice() string {
	return FormatMinor(l.Price)
}

// CartKey builds the composite cart-line key for a product and color
// variant, e.g. "p1::Black Sabre".
func CartKey(productID, color string) string {
	return productID + "::" + color
}

// FormatMinor renders integer minor units as a fixed two-decimal amount.
func FormatMinor(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}
