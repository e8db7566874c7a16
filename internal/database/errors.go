package database

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrUnauthorized       = errors.New("login required")
	ErrForbidden          = errors.New("admin only")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidDocument    = errors.New("invalid store document")
)
