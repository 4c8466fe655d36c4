// Package models holds the plain data structs persisted by the repositories.
// They carry no behaviour; all persistence lives in the repository packages.
package models

import "time"

// User is an account identified by a unique email. PasswordHash is a bcrypt
// hash and must never leave the service layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// TemporaryPassword is an administrative password override. While a row
// exists for a user, its hash shadows the permanent one during signin.
type TemporaryPassword struct {
	ID           string
	UserID       string
	PasswordHash string
	CreatedAt    time.Time
}

// Product is a catalog item. Read-only from the order workflow's perspective.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	CreatedAt   time.Time
}

// Order is the header row of a purchase. Money is integer cents.
type Order struct {
	ID                 string
	UserID             string
	OrderDate          time.Time
	Address            string
	TotalCostCents     int64
	TotalDiscountCents int64
}

// OrderLine associates one product and a quantity with one order.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
}
