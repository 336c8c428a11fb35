package models

import (
	"time"
)

// Order fulfillment statuses. Transitions only move forward; see the
// workflow package.
const (
	StatusPending   = "pending"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

// Product display statuses derived from the Available flag.
const (
	ProductAvailable   = "available"
	ProductUnavailable = "unavailable"
)

type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID        int         `json:"id"`
	Name      string      `json:"name" validate:"required"`
	Category  CategoryRef `json:"category"`
	BasePrice float64     `json:"basePrice" validate:"gte=0"`
	Available bool        `json:"available"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Status returns the display label backing the stored Available flag.
func (p Product) Status() string {
	if p.Available {
		return ProductAvailable
	}
	return ProductUnavailable
}

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

type Addon struct {
	ID       int     `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	IsGlobal bool    `json:"isGlobal"`
	// Categories the addon applies to; ignored when IsGlobal is set.
	Categories []int `json:"categories,omitempty"`
	Available  bool  `json:"available"`
}

type Discount struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name" validate:"required"`
	Percentage           float64 `json:"percentage" validate:"gte=0,lte=1"`
	RequiresVerification bool    `json:"requiresVerification"`
}

type UserRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type OrderAddon struct {
	AddonName string  `json:"addonName"`
	Price     float64 `json:"price"`
}

type OrderItem struct {
	ProductName string       `json:"productName"`
	Price       float64      `json:"price"`
	Addons      []OrderAddon `json:"addons,omitempty"`
}

// DiscountDetails is the percentage snapshot carried by an order. A nil
// pointer on Order means no discount is associated.
type DiscountDetails struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

type Order struct {
	ID              int              `json:"id"`
	User            UserRef          `json:"user"`
	Items           []OrderItem      `json:"items"`
	Status          string           `json:"status" validate:"required,oneof=pending ready completed"`
	DiscountDetails *DiscountDetails `json:"discountDetails,omitempty"`
	DiscountApplied bool             `json:"discountApplied"`
	Total           float64          `json:"total"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// Subtotal sums line prices plus their addon prices, before any discount.
func (o Order) Subtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price
		for _, addon := range item.Addons {
			sum += addon.Price
		}
	}
	return sum
}

// FieldErrors maps a field name to a single human-readable violation
// message, rendered next to the offending input by the admin UI.
type FieldErrors map[string]string

func (fe FieldErrors) Ok() bool { return len(fe) == 0 }
