// Package costing implementa el costeo de inventario (servicio de dominio).
package costing

import "github.com/shopspring/decimal"

// WeightedAverage devuelve el costo promedio ponderado tras una entrada:
//
//	nuevo = (stockActual*costoActual + cantidadEntrada*costoEntrada) / (stockActual + cantidadEntrada)
//
// Si la suma de cantidades no es positiva (stock negativo por configuración,
// o sin unidades) devuelve el costo de la entrada tal cual.
func WeightedAverage(currentStock, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	total := currentStock.Add(inQty)
	if total.LessThanOrEqual(decimal.Zero) {
		return inCost
	}
	value := currentStock.Mul(currentCost).Add(inQty.Mul(inCost))
	return value.Div(total)
}
