package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_ShippingBelowThreshold(t *testing.T) {
	items := []LineItem{{UnitPrice: 2500, Quantity: 2}}
	cfg := PaymentConfig{TaxPercent: 8, ShippingFee: 500, FreeShippingThreshold: 10000}

	totals := ComputeTotals(items, cfg)

	assert.Equal(t, int64(5000), totals.Subtotal)
	assert.Equal(t, int64(400), totals.TaxAmount)
	assert.Equal(t, int64(500), totals.ShippingAmount)
	assert.Equal(t, int64(5500), totals.Total)
}

func TestComputeTotals_ThresholdBoundaryIsInclusive(t *testing.T) {
	items := []LineItem{{UnitPrice: 2500, Quantity: 2}}
	cfg := PaymentConfig{TaxPercent: 8, ShippingFee: 500, FreeShippingThreshold: 5000}

	totals := ComputeTotals(items, cfg)

	// subtotal == seuil ⇒ livraison gratuite
	assert.Equal(t, int64(0), totals.ShippingAmount)
	assert.Equal(t, int64(5000), totals.Total)
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	cfg := PaymentConfig{TaxPercent: 21, ShippingFee: 499, FreeShippingThreshold: 5000}

	totals := ComputeTotals(nil, cfg)

	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.TaxAmount)
	// seuil > 0 et subtotal 0 < seuil ⇒ le forfait s'applique
	assert.Equal(t, int64(499), totals.ShippingAmount)
	assert.Equal(t, int64(499), totals.Total)
}

func TestComputeTotals_ZeroThresholdAlwaysFreeShipping(t *testing.T) {
	cfg := PaymentConfig{ShippingFee: 999, FreeShippingThreshold: 0}

	assert.Equal(t, int64(0), ComputeTotals(nil, cfg).ShippingAmount)
	assert.Equal(t, int64(0), ComputeTotals([]LineItem{{UnitPrice: 1, Quantity: 1}}, cfg).ShippingAmount)
}

func TestComputeTotals_DefaultConfig(t *testing.T) {
	items := []LineItem{{UnitPrice: 1299, Quantity: 3}}

	totals := ComputeTotals(items, DefaultConfig())

	assert.Equal(t, int64(3897), totals.Subtotal)
	assert.Equal(t, int64(0), totals.TaxAmount)
	assert.Equal(t, int64(0), totals.ShippingAmount)
	assert.Equal(t, int64(3897), totals.Total)
}

func TestComputeTotals_TaxNeverChargedInTotal(t *testing.T) {
	items := []LineItem{{UnitPrice: 10000, Quantity: 1}}
	cfg := PaymentConfig{TaxPercent: 21, ShippingFee: 500, FreeShippingThreshold: 20000}

	totals := ComputeTotals(items, cfg)

	assert.Equal(t, int64(2100), totals.TaxAmount)
	// le total facturé n'inclut jamais la TVA (prix TTC)
	assert.Equal(t, totals.Subtotal+totals.ShippingAmount, totals.Total)
}

func TestComputeTotals_TaxRoundsHalfAwayFromZero(t *testing.T) {
	// 150 × 3% = 4.5 centimes ⇒ 5
	totals := ComputeTotals(
		[]LineItem{{UnitPrice: 150, Quantity: 1}},
		PaymentConfig{TaxPercent: 3},
	)
	assert.Equal(t, int64(5), totals.TaxAmount)

	// 121 × 3% = 3.63 ⇒ 4 ; 111 × 3% = 3.33 ⇒ 3
	assert.Equal(t, int64(4), ComputeTotals([]LineItem{{UnitPrice: 121, Quantity: 1}}, PaymentConfig{TaxPercent: 3}).TaxAmount)
	assert.Equal(t, int64(3), ComputeTotals([]LineItem{{UnitPrice: 111, Quantity: 1}}, PaymentConfig{TaxPercent: 3}).TaxAmount)
}

func TestComputeTotals_ExactIntegerSubtotal(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 199, Quantity: 7},
		{UnitPrice: 4999, Quantity: 2},
		{UnitPrice: 1, Quantity: 100},
	}

	totals := ComputeTotals(items, DefaultConfig())

	assert.Equal(t, int64(199*7+4999*2+100), totals.Subtotal)
}

func TestComputeTotals_Deterministic(t *testing.T) {
	items := []LineItem{{UnitPrice: 3333, Quantity: 3}, {UnitPrice: 275, Quantity: 11}}
	cfg := PaymentConfig{TaxPercent: 5.5, ShippingFee: 650, FreeShippingThreshold: 15000}

	first := ComputeTotals(items, cfg)
	second := ComputeTotals(items, cfg)

	assert.Equal(t, first, second)
	// les entrées ne sont pas modifiées
	assert.Equal(t, int64(3333), items[0].UnitPrice)
	assert.Equal(t, 3, items[0].Quantity)
}
