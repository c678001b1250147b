package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/enum"
)

func cartWithSubtotal(cents int64) *entity.Cart {
	cart := entity.NewCart()
	cart.AddItem(entity.CatalogItem{ID: "p1", Name: "Item", Price: cents, CategoryID: "c1"}, 1)
	return cart
}

func TestComputeNoDiscount(t *testing.T) {
	t.Parallel()

	engine := NewPricingEngine(7)
	totals := engine.Compute(cartWithSubtotal(500), DiscountConfig{}, nil)

	assert.Equal(t, int64(500), totals.Subtotal)
	assert.Equal(t, int64(35), totals.Tax)
	assert.Equal(t, int64(535), totals.Total)
	assert.Equal(t, int64(535), totals.DiscountedTotal)
	assert.Equal(t, int64(535), totals.FinalAmount)
	assert.Equal(t, int64(0), totals.Change)
}

func TestComputePercentDiscount(t *testing.T) {
	t.Parallel()

	engine := NewPricingEngine(7)
	discount := DiscountConfig{Type: enum.DiscountTypePercent, Value: 10}
	paid := int64(500)
	totals := engine.Compute(cartWithSubtotal(500), discount, &paid)

	// $5.35 less 10% is $4.815, rounded half away from zero to $4.82.
	assert.Equal(t, int64(482), totals.DiscountedTotal)
	assert.Equal(t, int64(482), totals.FinalAmount)
	assert.Equal(t, int64(18), totals.Change)
}

func TestComputeFixedDiscount(t *testing.T) {
	t.Parallel()

	engine := NewPricingEngine(7)
	discount := DiscountConfig{Type: enum.DiscountTypeFixed, Value: 1.00}
	totals := engine.Compute(cartWithSubtotal(500), discount, nil)

	assert.Equal(t, int64(435), totals.DiscountedTotal)
	assert.Equal(t, int64(435), totals.FinalAmount)
}

func TestComputeDiscountFloorsAtZero(t *testing.T) {
	t.Parallel()

	engine := NewPricingEngine(7)

	percent := engine.Compute(cartWithSubtotal(500), DiscountConfig{Type: enum.DiscountTypePercent, Value: 150}, nil)
	assert.Equal(t, int64(0), percent.DiscountedTotal)

	fixed := engine.Compute(cartWithSubtotal(500), DiscountConfig{Type: enum.DiscountTypeFixed, Value: 99.99}, nil)
	assert.Equal(t, int64(0), fixed.DiscountedTotal)
}

func TestComputeOverrideBypassesDiscount(t *testing.T) {
	t.Parallel()

	engine := NewPricingEngine(7)
	override := int64(400)
	discount := DiscountConfig{Type: enum.DiscountTypePercent, Value: 10, Override: &override}
	paid := int64(500)
	totals := engine.Compute(cartWithSubtotal(500), discount, &paid)

	// The computed discount is unaffected, the payable amount is not.
	assert.Equal(t, int64(482), totals.DiscountedTotal)
	assert.Equal(t, int64(400), totals.FinalAmount)
	assert.Equal(t, int64(100), totals.Change)
}

func TestComputeChangeNeverNegative(t *testing.T) {
	t.Parallel()

	engine := NewPricingEngine(7)
	paid := int64(100)
	totals := engine.Compute(cartWithSubtotal(500), DiscountConfig{}, &paid)

	assert.Equal(t, int64(0), totals.Change)
}

func TestComputeIsIdempotent(t *testing.T) {
	t.Parallel()

	engine := NewPricingEngine(7)
	cart := cartWithSubtotal(500)
	discount := DiscountConfig{Type: enum.DiscountTypePercent, Value: 10}

	first := engine.Compute(cart, discount, nil)
	second := engine.Compute(cart, discount, nil)
	assert.Equal(t, first, second)
}

func TestComputeEmptyCart(t *testing.T) {
	t.Parallel()

	engine := NewPricingEngine(7)
	totals := engine.Compute(entity.NewCart(), DiscountConfig{}, nil)

	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.FinalAmount)
}
