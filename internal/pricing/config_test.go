package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, PaymentConfig{TaxPercent: 21, ShippingFee: 499, FreeShippingThreshold: 5000}.Validate())
	assert.NoError(t, PaymentConfig{}.Validate())

	assert.ErrorIs(t, PaymentConfig{TaxPercent: -1}.Validate(), ErrNegativeTaxPercent)
	assert.ErrorIs(t, PaymentConfig{ShippingFee: -500}.Validate(), ErrNegativeShippingFee)
	assert.ErrorIs(t, PaymentConfig{FreeShippingThreshold: -1}.Validate(), ErrNegativeFreeShipping)
}
