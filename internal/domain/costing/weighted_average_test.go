package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/pos-catalogo/internal/domain/costing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWeightedAverage(t *testing.T) {
	// 10 unidades a 8.00 más 5 unidades a 14.00 -> 150/15 = 10.00.
	got := costing.WeightedAverage(d("10"), d("8.00"), d("5"), d("14.00"))
	assert.True(t, got.Equal(d("10")), "got %s", got)

	// Sin stock previo el costo es el de la entrada.
	got = costing.WeightedAverage(d("0"), d("0"), d("20"), d("3.50"))
	assert.True(t, got.Equal(d("3.50")), "got %s", got)
}

func TestWeightedAverage_StockNegativo(t *testing.T) {
	// Con stock negativo (permitido por configuración) la suma puede no ser
	// positiva: se toma el costo de la entrada en lugar de dividir por <= 0.
	got := costing.WeightedAverage(d("-5"), d("8.00"), d("5"), d("14.00"))
	assert.True(t, got.Equal(d("14.00")), "got %s", got)

	got = costing.WeightedAverage(d("-10"), d("8.00"), d("4"), d("14.00"))
	assert.True(t, got.Equal(d("14.00")), "got %s", got)
}
