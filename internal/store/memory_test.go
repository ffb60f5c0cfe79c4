package store

import (
	"context"
	"testing"

	"aurelia_back_end/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryConfigStore_GetCreatesDefaultOnce(t *testing.T) {
	s := NewMemoryConfigStore()
	ctx := context.Background()

	first, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, pricing.DefaultConfig(), first)
	assert.Equal(t, 1, s.Creates)

	second, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// pas de seconde création
	assert.Equal(t, 1, s.Creates)
}

func TestMemoryConfigStore_UpdateReplacesWholeRecord(t *testing.T) {
	s := NewMemoryConfigStore()
	ctx := context.Background()

	want := pricing.PaymentConfig{TaxPercent: 21, ShippingFee: 499, FreeShippingThreshold: 5000}
	got, err := s.Update(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	read, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, read)
}

func TestMemoryConfigStore_UpdateRejectsNegativeValues(t *testing.T) {
	s := NewMemoryConfigStore()
	ctx := context.Background()

	_, err := s.Update(ctx, pricing.PaymentConfig{ShippingFee: -1})
	assert.ErrorIs(t, err, pricing.ErrNegativeShippingFee)

	// rien n'a été appliqué partiellement
	cfg, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, pricing.DefaultConfig(), cfg)
}
