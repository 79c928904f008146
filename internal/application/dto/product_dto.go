package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
}

// ProductResponse respuesta de producto con niveles de stock.
type ProductResponse struct {
	ID                 string          `json:"id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	Cost               decimal.Decimal `json:"cost"`
	StockReal          decimal.Decimal `json:"stock_real"`
	StockForecastedIn  decimal.Decimal `json:"stock_forecasted_in"`
	StockForecastedOut decimal.Decimal `json:"stock_forecasted_out"`
	StockAvailable     decimal.Decimal `json:"stock_available"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad a la respuesta HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		SKU:                p.SKU,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		Cost:               p.Cost,
		StockReal:          p.StockReal,
		StockForecastedIn:  p.StockForecastedIn,
		StockForecastedOut: p.StockForecastedOut,
		StockAvailable:     p.StockAvailable(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
