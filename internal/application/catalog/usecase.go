package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/application/dto"
	"github.com/verone/stock-api/internal/domain"
	"github.com/verone/stock-api/internal/domain/entity"
	"github.com/verone/stock-api/internal/domain/repository"
	"github.com/verone/stock-api/pkg/normalize"
)

// UseCase casos de uso del catálogo de productos.
type UseCase struct {
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository) *UseCase {
	return &UseCase{productRepo: productRepo}
}

// Create crea un producto con stock en cero. SKU único.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		SKU:                in.SKU,
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		Cost:               in.Cost,
		StockReal:          decimal.Zero,
		StockForecastedIn:  decimal.Zero,
		StockForecastedOut: decimal.Zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Search busca productos por nombre o SKU. La query se normaliza sin acentos
// para que "Etagere" encuentre "Étagère" (catálogo francés).
func (uc *UseCase) Search(ctx context.Context, query string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.Search(normalize.Fold(query), limit, offset)
}
