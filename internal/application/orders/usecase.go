package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/application/dto"
	"github.com/verone/stock-api/internal/domain"
	"github.com/verone/stock-api/internal/domain/entity"
	"github.com/verone/stock-api/internal/domain/repository"
)

// UseCase casos de uso del ciclo de vida de órdenes: creación en draft,
// validación (reserva la previsión de stock), cancelación (la libera) y
// eliminación de borradores.
type UseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	lineRepo    repository.OrderLineRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, lineRepo repository.OrderLineRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, lineRepo: lineRepo, productRepo: productRepo}
}

// Create crea una orden en draft con sus líneas. Toda cantidad pedida debe
// ser positiva; los productos deben existir.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOrderRequest, userID string) (*entity.Order, error) {
	if in.Side != entity.OrderSidePurchase && in.Side != entity.OrderSideSales {
		return nil, domain.ErrInvalidInput
	}
	if in.Reference == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Reference: in.Reference,
		Side:      in.Side,
		Status:    entity.OrderStatusDraft,
		Notes:     in.Notes,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lines := make([]*entity.OrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := product.Price
		if in.Side == entity.OrderSidePurchase {
			unitPrice = product.Cost
		}
		if l.UnitPrice != nil {
			unitPrice = *l.UnitPrice
		}
		lines = append(lines, &entity.OrderLine{
			ID:           uuid.New().String(),
			OrderID:      order.ID,
			ProductID:    l.ProductID,
			OrderedQty:   l.Quantity,
			FulfilledQty: decimal.Zero,
			UnitPrice:    unitPrice,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	err := uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.OrderRepository,
		lineRepo repository.OrderLineRepository,
		_ repository.ProductRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return lineRepo.CreateBatch(lines)
	})
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// GetByID devuelve la orden con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.lineRepo.ListByOrder(id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// List lista órdenes con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	return uc.orderRepo.List(filter)
}

// Validate pasa la orden de draft a pending y reserva la previsión de stock:
// compras suman lo pendiente a stock_forecasted_in de cada producto, ventas a
// stock_forecasted_out. Reemplaza el trigger handle_purchase_order_forecast
// del sistema original con una llamada explícita y testeable, atómica con el
// cambio de estado.
func (uc *UseCase) Validate(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := uc.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusDraft {
		return nil, domain.ErrConflict
	}
	err = uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.OrderRepository,
		lineRepo repository.OrderLineRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, line := range order.Lines {
			if err := uc.shiftForecast(productRepo, line.ProductID, order.Side, line.Remaining()); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusPending)
	})
	if err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusPending
	return order, nil
}

// Cancel cancela una orden no cumplida y libera la previsión reservada por
// las cantidades aún pendientes.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := uc.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case entity.OrderStatusFulfilled, entity.OrderStatusCancelled:
		return nil, domain.ErrConflict
	}
	err = uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.OrderRepository,
		lineRepo repository.OrderLineRepository,
		productRepo repository.ProductRepository,
	) error {
		// Draft nunca reservó previsión; no hay nada que liberar.
		if order.Status != entity.OrderStatusDraft {
			for _, line := range order.Lines {
				if err := uc.shiftForecast(productRepo, line.ProductID, order.Side, line.Remaining().Neg()); err != nil {
					return err
				}
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCancelled
	return order, nil
}

// Delete elimina una orden draft o cancelled.
func (uc *UseCase) Delete(ctx context.Context, orderID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !order.IsDeletable() {
		return domain.ErrConflict
	}
	return uc.orderRepo.Delete(orderID)
}

// shiftForecast ajusta el contador de previsión del producto bajo row lock.
// qty positiva reserva, negativa libera; el contador nunca baja de cero.
func (uc *UseCase) shiftForecast(productRepo repository.ProductRepository, productID, side string, qty decimal.Decimal) error {
	if qty.IsZero() {
		return nil
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	levels := repository.StockLevels{
		Real:          product.StockReal,
		ForecastedIn:  product.StockForecastedIn,
		ForecastedOut: product.StockForecastedOut,
	}
	if side == entity.OrderSidePurchase {
		levels.ForecastedIn = clampZero(levels.ForecastedIn.Add(qty))
	} else {
		levels.ForecastedOut = clampZero(levels.ForecastedOut.Add(qty))
	}
	return productRepo.UpdateStockLevels(product.ID, levels)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
