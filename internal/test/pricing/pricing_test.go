package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/pricing"
)

func TestPriceCents(t *testing.T) {
	cases := []struct {
		product models.ProductType
		size    string
		want    int64
	}{
		{models.ProductDigital, "", 4990},
		{models.ProductDigital, "A4", 4990}, // size ignored for digital
		{models.ProductPrint, "A4", 7990},
		{models.ProductPrint, "A3", 9990},
		{models.ProductCanvas, "30x40", 14990},
		{models.ProductCanvas, "40x60", 19990},
	}

	for _, tc := range cases {
		price, err := pricing.PriceCents(tc.product, tc.size)
		require.NoError(t, err, "%s %s", tc.product, tc.size)
		assert.Equal(t, tc.want, price)
	}
}

func TestPriceCents_InvalidInput(t *testing.T) {
	_, err := pricing.PriceCents(models.ProductPrint, "A7")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = pricing.PriceCents(models.ProductCanvas, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = pricing.PriceCents(models.ProductType("sticker"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSizes(t *testing.T) {
	assert.Nil(t, pricing.Sizes(models.ProductDigital))
	assert.Equal(t, []string{"A4", "A3"}, pricing.Sizes(models.ProductPrint))
	assert.Equal(t, []string{"30x40", "40x60"}, pricing.Sizes(models.ProductCanvas))
}
