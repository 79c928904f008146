package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto/SKU del catálogo con sus niveles de stock.
// StockReal es el stock físico; StockForecastedIn/Out son reservas de
// previsión (compras validadas pendientes de recibir, ventas pendientes de
// expedir). Los tres se mantienen desde el motor de reconciliación, no por
// triggers de base de datos.
type Product struct {
	ID                 string
	SKU                string // único
	Name               string
	Description        string
	Price              decimal.Decimal // precio de venta
	Cost               decimal.Decimal // costo unitario de compra
	StockReal          decimal.Decimal
	StockForecastedIn  decimal.Decimal
	StockForecastedOut decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// StockAvailable stock vendible: real menos reservas de salida.
func (p *Product) StockAvailable() decimal.Decimal {
	return p.StockReal.Sub(p.StockForecastedOut)
}
