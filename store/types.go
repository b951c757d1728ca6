package store

//go:generate go run struct-update/cmd/struct-update gen .

import (
	"strings"
	"time"
)

// Product represents an individual item available for sale.
// Price is kept in cents to avoid floating-point errors.
//
//structupdate:with ty=string func=strings.TrimSpace
//structupdate:with ty=time.Time func=utc
type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description string
	PriceCents  int64
	Inventory   int
	CreatedAt   time.Time
}

// Customer represents the user placing orders. Address is a pointer and is
// left alone; Email is trimmed then lower-cased.
//
//structupdate:with ty=string func=strings.TrimSpace
//structupdate:with ty=Email func=normalizeEmail
type Customer struct {
	ID       int64
	Email    Email
	FullName string
	Address  *string
	IsActive bool
}

// Order represents a transaction made by a customer.
//
//structupdate:with ty=OrderStatus func=OrderStatus.Normalize
//structupdate:with ty=Time func=utc
//structupdate:with ty=Items func=mergeItems
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	TotalCents int64
	Items      Items
	OrderedAt  time.Time
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// Items is the list of lines of an order.
type Items []OrderItem

// Clone returns a copy of the list that shares no backing array with it.
func (it Items) Clone() Items {
	if it == nil {
		return nil
	}

	return append(Items(nil), it...)
}

// Email is a customer e-mail address.
type Email string

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Normalize upper-cases the status and maps the empty status to pending.
func (s OrderStatus) Normalize() OrderStatus {
	if s == "" {
		return StatusPending
	}

	return OrderStatus(strings.ToUpper(strings.TrimSpace(string(s))))
}

func utc(t time.Time) time.Time {
	return t.UTC()
}

func normalizeEmail(e Email) Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

// mergeItems folds lines of the same product together, keeping first-seen
// order. It reuses the backing array of its argument.
func mergeItems(items Items) Items {
	out := items[:0]
	index := make(map[int64]int, len(items))

	for _, it := range items {
		if i, ok := index[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}

		index[it.ProductID] = len(out)
		out = append(out, it)
	}

	return out
}
