package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductStatusLabel(t *testing.T) {
	assert.Equal(t, ProductAvailable, Product{Available: true}.Status())
	assert.Equal(t, ProductUnavailable, Product{}.Status())
}

func TestOrderSubtotalIncludesAddons(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductName: "Latte", Price: 120, Addons: []OrderAddon{
				{AddonName: "Oat Milk", Price: 20},
				{AddonName: "Extra Shot", Price: 30},
			}},
			{ProductName: "Mocha", Price: 140},
		},
	}

	assert.InDelta(t, 310.0, order.Subtotal(), 1e-9)
}
