package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEuros(t *testing.T) {
	assert.Equal(t, "0.00€", FormatEuros(0))
	assert.Equal(t, "0.05€", FormatEuros(5))
	assert.Equal(t, "12.99€", FormatEuros(1299))
	assert.Equal(t, "55.00€", FormatEuros(5500))
	assert.Equal(t, "-4.99€", FormatEuros(-499))
}
