package repository

import (
	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain/entity"
)

// StockLevels niveles de stock de un producto a actualizar bajo row lock.
type StockLevels struct {
	Real          decimal.Decimal
	ForecastedIn  decimal.Decimal
	ForecastedOut decimal.Decimal
}

// ProductRepository puerto de persistencia para productos y sus niveles de stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// Search busca por nombre o SKU normalizados (sin acentos), paginado.
	Search(query string, limit, offset int) ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStockLevels(id string, levels StockLevels) error
}
