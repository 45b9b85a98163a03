// Package pricing holds the fixed server-side price table. Order amounts are
// always computed here; anything price-like in a request payload is ignored.
package pricing

import (
	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
)

// Prices in BRL cents, keyed by size for sized products.
var (
	digitalPrice int64 = 4990

	printPrices = map[string]int64{
		"A4": 7990,
		"A3": 9990,
	}

	canvasPrices = map[string]int64{
		"30x40": 14990,
		"40x60": 19990,
	}
)

// PriceCents returns the fixed price for (productType, size). Digital ignores
// size; physical products require a known size.
func PriceCents(product models.ProductType, size string) (int64, error) {
	switch product {
	case models.ProductDigital:
		return digitalPrice, nil
	case models.ProductPrint:
		if price, ok := printPrices[size]; ok {
			return price, nil
		}
		return 0, apperr.Newf(apperr.ErrValidation, "Tamanho inválido para impressão: %q", size)
	case models.ProductCanvas:
		if price, ok := canvasPrices[size]; ok {
			return price, nil
		}
		return 0, apperr.Newf(apperr.ErrValidation, "Tamanho inválido para canvas: %q", size)
	}
	return 0, apperr.Newf(apperr.ErrValidation, "Produto desconhecido: %q", string(product))
}

// Sizes returns the valid sizes for a product, nil when the product has none.
func Sizes(product models.ProductType) []string {
	switch product {
	case models.ProductPrint:
		return []string{"A4", "A3"}
	case models.ProductCanvas:
		return []string{"30x40", "40x60"}
	}
	return nil
}
