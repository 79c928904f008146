package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain"
	"github.com/verone/stock-api/internal/domain/entity"
	"github.com/verone/stock-api/internal/domain/repository"
	"github.com/verone/stock-api/internal/domain/stock"
	"github.com/verone/stock-api/pkg/logger"
)

// UseCase orquesta un lote de reconciliación: valida los eventos (todo-o-nada),
// emite los movimientos línea a línea con row lock (SELECT FOR UPDATE) y
// re-deriva el estado de la orden. Punto de entrada único para recepciones de
// compra y expediciones de venta.
type UseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	lineRepo  repository.OrderLineRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, lineRepo repository.OrderLineRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, lineRepo: lineRepo, log: log}
}

// Result resultado de un lote: estado final de la orden y movimientos emitidos.
type Result struct {
	OrderStatus string
	Movements   []*entity.Movement
}

// ReconcileAndEmit procesa un lote de eventos contra una orden.
//
// Fase de validación: todo-o-nada sobre el estado leído (ErrUnknownLine,
// ErrInvalidQuantity abortan sin escribir nada). Fase de emisión: una
// transacción por línea; un fallo a mitad de lote deja confirmadas las líneas
// ya escritas y devuelve PersistenceError con las pendientes, para que el
// caller reenvíe el lote completo (los deltas ya aplicados recalculan a cero).
// El estado de la orden se re-deriva y persiste al final, con éxito o con
// éxito parcial, siempre sobre líneas ya confirmadas.
// expectedSide ata el endpoint al lado de la orden: recepciones solo sobre
// órdenes de compra, expediciones solo sobre órdenes de venta.
// notes se copia a cada movimiento emitido del lote.
func (uc *UseCase) ReconcileAndEmit(ctx context.Context, orderID, expectedSide string, events []Event, notes, userID string) (*Result, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Side != expectedSide {
		return nil, domain.ErrConflict
	}
	// Solo órdenes validadas reciben cumplimientos; draft aún no reserva
	// previsión y cancelled ya la liberó.
	switch order.Status {
	case entity.OrderStatusPending, entity.OrderStatusPartiallyFulfilled, entity.OrderStatusFulfilled:
	default:
		return nil, domain.ErrConflict
	}
	if len(events) == 0 {
		return nil, domain.ErrInvalidInput
	}

	lines, err := uc.lineRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.OrderLine, len(lines))
	for _, l := range lines {
		byID[l.ID] = l
	}

	updates, err := Reconcile(events, byID)
	if err != nil {
		return nil, err
	}

	kind := entity.MovementKindIN
	reason := entity.ReasonPurchaseReception
	forecastType := entity.ForecastTypeIn
	if order.Side == entity.OrderSideSales {
		kind = entity.MovementKindOUT
		reason = entity.ReasonSale
		forecastType = entity.ForecastTypeOut
	}

	batchID := uuid.New().String()
	movements := make([]*entity.Movement, 0, len(updates))
	var emitErr error

	for i, upd := range updates {
		mov, err := uc.emitLine(ctx, upd, kind, reason, forecastType, batchID, notes, userID)
		if err != nil {
			pending := make([]string, 0, len(updates)-i)
			for _, rest := range updates[i:] {
				pending = append(pending, rest.LineID)
			}
			emitErr = &domain.PersistenceError{Pending: pending, Err: err}
			break
		}
		if mov != nil {
			movements = append(movements, mov)
		}
	}

	// Re-derivar el estado sobre las líneas ya confirmadas, también tras un
	// éxito parcial (reemplazo explícito de los triggers del sistema original).
	status := order.Status
	if fresh, err := uc.lineRepo.ListByOrder(orderID); err == nil {
		status = stock.ResolveStatus(fresh)
		if status != order.Status {
			if err := uc.orderRepo.UpdateStatus(orderID, status); err != nil {
				uc.log.Error().Err(err).Str("order_id", orderID).Msg("actualizar estado de orden")
			}
		}
	} else {
		uc.log.Error().Err(err).Str("order_id", orderID).Msg("releer líneas para derivar estado")
	}

	if emitErr != nil {
		return nil, emitErr
	}
	uc.log.Info().
		Str("order_id", orderID).
		Str("batch_id", batchID).
		Int("movements", len(movements)).
		Str("status", status).
		Msg("lote de reconciliación aplicado")
	return &Result{OrderStatus: status, Movements: movements}, nil
}

// emitLine confirma una línea en su propia transacción: bloquea la línea y el
// producto, recalcula el delta bajo el lock (carreras entre lotes concurrentes
// y reintentos), inserta el movimiento y actualiza acumulado y niveles de
// stock como una sola unidad. Devuelve nil, nil si el delta recalculado es cero.
func (uc *UseCase) emitLine(ctx context.Context, upd LineUpdate, kind, reason, forecastType, batchID, notes, userID string) (*entity.Movement, error) {
	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		lineRepo repository.OrderLineRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		line, err := lineRepo.GetForUpdate(upd.LineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrUnknownLine
		}
		// Delta bajo el lock: otro lote pudo avanzar la línea entre la
		// validación y este punto. Acumulado ya alcanzado -> no-op.
		delta := upd.NewFulfilledQty.Sub(line.FulfilledQty)
		if !delta.IsPositive() {
			return nil
		}
		if upd.NewFulfilledQty.GreaterThan(line.OrderedQty) {
			return domain.ErrInvalidQuantity
		}

		product, err := productRepo.GetForUpdate(line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		before := product.StockReal
		levels := repository.StockLevels{
			Real:          product.StockReal,
			ForecastedIn:  product.StockForecastedIn,
			ForecastedOut: product.StockForecastedOut,
		}
		switch kind {
		case entity.MovementKindIN:
			levels.Real = levels.Real.Add(delta)
			levels.ForecastedIn = clampZero(levels.ForecastedIn.Sub(delta))
		case entity.MovementKindOUT:
			if product.StockReal.LessThan(delta) {
				return domain.ErrInsufficientStock
			}
			levels.Real = levels.Real.Sub(delta)
			levels.ForecastedOut = clampZero(levels.ForecastedOut.Sub(delta))
		default:
			return domain.ErrInvalidInput
		}

		now := time.Now()
		m := &entity.Movement{
			ID:              uuid.New().String(),
			BatchID:         batchID,
			OrderLineID:     line.ID,
			ProductID:       line.ProductID,
			Kind:            kind,
			Delta:           delta,
			Reason:          reason,
			QtyBefore:       before,
			QtyAfter:        levels.Real,
			AffectsForecast: true,
			ForecastType:    forecastType,
			Notes:           notes,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		if err := movRepo.Create(m); err != nil {
			return err
		}
		if err := lineRepo.UpdateFulfilled(line.ID, upd.NewFulfilledQty); err != nil {
			return err
		}
		if err := productRepo.UpdateStockLevels(product.ID, levels); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
