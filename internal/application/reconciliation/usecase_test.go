package reconciliation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verone/stock-api/internal/application/reconciliation"
	"github.com/verone/stock-api/internal/domain"
	"github.com/verone/stock-api/internal/domain/entity"
	"github.com/verone/stock-api/internal/domain/repository"
	"github.com/verone/stock-api/pkg/logger"
)

// ─────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────

// fakeStore estado compartido de los repos fake. Sin transacciones reales:
// el emisor escribe el movimiento primero, así que un fallo inyectado en
// Create deja la línea y el producto intactos, igual que un rollback.
type fakeStore struct {
	orders    map[string]*entity.Order
	lines     map[string]*entity.OrderLine
	lineOrder []string
	products  map[string]*entity.Product
	movements []*entity.Movement

	failCreateFor map[string]error // order_line_id -> error inyectado en Create
	statusLog     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:        make(map[string]*entity.Order),
		lines:         make(map[string]*entity.OrderLine),
		products:      make(map[string]*entity.Product),
		failCreateFor: make(map[string]error),
	}
}

func (s *fakeStore) addOrder(o *entity.Order) { s.orders[o.ID] = o }

func (s *fakeStore) addLine(l *entity.OrderLine) {
	s.lines[l.ID] = l
	s.lineOrder = append(s.lineOrder, l.ID)
}

func (s *fakeStore) addProduct(p *entity.Product) { s.products[p.ID] = p }

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(o *entity.Order) error { r.s.addOrder(o); return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.s.orders[id], nil
}
func (r *fakeOrderRepo) List(repository.OrderFilter) ([]*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.s.statusLog = append(r.s.statusLog, status)
	return nil
}
func (r *fakeOrderRepo) Delete(id string) error { delete(r.s.orders, id); return nil }

type fakeLineRepo struct{ s *fakeStore }

func (r *fakeLineRepo) CreateBatch(ls []*entity.OrderLine) error {
	for _, l := range ls {
		r.s.addLine(l)
	}
	return nil
}
func (r *fakeLineRepo) ListByOrder(orderID string) ([]*entity.OrderLine, error) {
	out := make([]*entity.OrderLine, 0)
	for _, id := range r.s.lineOrder {
		if l := r.s.lines[id]; l != nil && l.OrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *fakeLineRepo) GetForUpdate(id string) (*entity.OrderLine, error) {
	l, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}
func (r *fakeLineRepo) UpdateFulfilled(id string, fulfilled decimal.Decimal) error {
	l, ok := r.s.lines[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.FulfilledQty = fulfilled
	return nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	if err, ok := r.s.failCreateFor[m.OrderLineID]; ok {
		return err
	}
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeMovementRepo) List(repository.MovementFilter) ([]*entity.Movement, error) {
	return r.s.movements, nil
}
func (r *fakeMovementRepo) ListByBatch(batchID string) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0)
	for _, m := range r.s.movements {
		if m.BatchID == batchID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.addProduct(p); return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Search(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) UpdateStockLevels(id string, levels repository.StockLevels) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockReal = levels.Real
	p.StockForecastedIn = levels.ForecastedIn
	p.StockForecastedOut = levels.ForecastedOut
	return nil
}

type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	lineRepo repository.OrderLineRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&fakeLineRepo{t.s}, &fakeMovementRepo{t.s}, &fakeProductRepo{t.s})
}

// ─────────────────────────────────────────────
// Helpers de escenario
// ─────────────────────────────────────────────

func newUseCase(s *fakeStore) *reconciliation.UseCase {
	return reconciliation.NewUseCase(&fakeTxRunner{s}, &fakeOrderRepo{s}, &fakeLineRepo{s}, logger.Nop())
}

// seedPurchase orden de compra validada con dos líneas (10 y 5) y sus productos.
func seedPurchase(s *fakeStore) {
	s.addOrder(&entity.Order{ID: "ord-1", Reference: "PO-2025-0042", Side: entity.OrderSidePurchase, Status: entity.OrderStatusPending})
	s.addLine(&entity.OrderLine{ID: "l1", OrderID: "ord-1", ProductID: "p1", OrderedQty: qty(10)})
	s.addLine(&entity.OrderLine{ID: "l2", OrderID: "ord-1", ProductID: "p2", OrderedQty: qty(5)})
	s.addProduct(&entity.Product{ID: "p1", SKU: "CAN-001", StockReal: qty(2), StockForecastedIn: qty(10)})
	s.addProduct(&entity.Product{ID: "p2", SKU: "TAB-002", StockForecastedIn: qty(5)})
}

func seedSales(s *fakeStore) {
	s.addOrder(&entity.Order{ID: "ord-2", Reference: "SO-2025-0131", Side: entity.OrderSideSales, Status: entity.OrderStatusPending})
	s.addLine(&entity.OrderLine{ID: "l3", OrderID: "ord-2", ProductID: "p1", OrderedQty: qty(4)})
	s.addProduct(&entity.Product{ID: "p1", SKU: "CAN-001", StockReal: qty(3), StockForecastedOut: qty(4)})
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

// Recepción parcial de compra: movimientos IN, acumulados y niveles de stock
// actualizados, estado parcial.
func TestReconcileAndEmit_RecepcionParcial(t *testing.T) {
	s := newFakeStore()
	seedPurchase(s)
	uc := newUseCase(s)

	res, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(6)},
		{OrderLineID: "l2", QtyReported: qty(5)},
	}, "", "user-1")
	require.NoError(t, err)
	require.Len(t, res.Movements, 2)

	assert.Equal(t, entity.OrderStatusPartiallyFulfilled, res.OrderStatus)
	assert.Equal(t, entity.OrderStatusPartiallyFulfilled, s.orders["ord-1"].Status)

	m := res.Movements[0]
	assert.Equal(t, entity.MovementKindIN, m.Kind)
	assert.Equal(t, entity.ReasonPurchaseReception, m.Reason)
	assert.True(t, qty(6).Equal(m.Delta))
	assert.True(t, qty(2).Equal(m.QtyBefore))
	assert.True(t, qty(8).Equal(m.QtyAfter))
	assert.Equal(t, m.BatchID, res.Movements[1].BatchID, "mismo lote")

	assert.True(t, qty(6).Equal(s.lines["l1"].FulfilledQty))
	assert.True(t, qty(8).Equal(s.products["p1"].StockReal))
	assert.True(t, qty(4).Equal(s.products["p1"].StockForecastedIn), "previsión liberada por el delta")
	assert.True(t, qty(5).Equal(s.products["p2"].StockReal))
	assert.True(t, s.products["p2"].StockForecastedIn.IsZero())
}

// Completar las líneas restantes lleva la orden a fulfilled.
func TestReconcileAndEmit_CompletaOrden(t *testing.T) {
	s := newFakeStore()
	seedPurchase(s)
	uc := newUseCase(s)

	_, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(6)},
	}, "", "user-1")
	require.NoError(t, err)

	res, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(10)},
		{OrderLineID: "l2", QtyReported: qty(5)},
	}, "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFulfilled, res.OrderStatus)
	assert.True(t, qty(12).Equal(s.products["p1"].StockReal))
}

// Reenviar el mismo lote no duplica movimientos ni stock: los deltas
// recalculan a cero y el resultado no trae movimientos nuevos.
func TestReconcileAndEmit_ReintentoIdempotente(t *testing.T) {
	s := newFakeStore()
	seedPurchase(s)
	uc := newUseCase(s)

	batch := []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(6)},
		{OrderLineID: "l2", QtyReported: qty(5)},
	}
	_, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, batch, "", "user-1")
	require.NoError(t, err)
	require.Len(t, s.movements, 2)

	res, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, batch, "", "user-1")
	require.NoError(t, err)
	assert.Empty(t, res.Movements)
	assert.Len(t, s.movements, 2, "sin movimientos nuevos")
	assert.True(t, qty(8).Equal(s.products["p1"].StockReal))
}

// Un evento inválido rechaza el lote completo sin escribir nada.
func TestReconcileAndEmit_ValidacionAtomica(t *testing.T) {
	s := newFakeStore()
	seedPurchase(s)
	uc := newUseCase(s)

	_, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(6)},
		{OrderLineID: "l2", QtyReported: qty(9)}, // excede lo pedido
	}, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Empty(t, s.movements)
	assert.True(t, s.lines["l1"].FulfilledQty.IsZero())
	assert.True(t, qty(2).Equal(s.products["p1"].StockReal))
	assert.Equal(t, entity.OrderStatusPending, s.orders["ord-1"].Status)
}

// Fallo de persistencia a mitad de lote: las líneas ya confirmadas quedan,
// el error reporta las pendientes y el estado refleja el progreso parcial.
func TestReconcileAndEmit_FalloParcialReportaPendientes(t *testing.T) {
	s := newFakeStore()
	seedPurchase(s)
	s.failCreateFor["l2"] = errors.New("conexión perdida")
	uc := newUseCase(s)

	_, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(10)},
		{OrderLineID: "l2", QtyReported: qty(5)},
	}, "", "user-1")
	require.Error(t, err)

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, []string{"l2"}, perr.Pending)

	// l1 quedó confirmada; l2 intacta (el movimiento se escribe primero).
	assert.True(t, qty(10).Equal(s.lines["l1"].FulfilledQty))
	assert.True(t, s.lines["l2"].FulfilledQty.IsZero())
	assert.Len(t, s.movements, 1)
	// El estado se re-deriva también tras el fallo parcial.
	assert.Equal(t, entity.OrderStatusPartiallyFulfilled, s.orders["ord-1"].Status)

	// El reintento del lote completo termina el trabajo sin duplicar l1.
	delete(s.failCreateFor, "l2")
	res, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(10)},
		{OrderLineID: "l2", QtyReported: qty(5)},
	}, "", "user-1")
	require.NoError(t, err)
	assert.Len(t, res.Movements, 1)
	assert.Equal(t, entity.OrderStatusFulfilled, res.OrderStatus)
}

// Expedición de venta: movimiento OUT, stock real decrece y la previsión de
// salida se libera.
func TestReconcileAndEmit_ExpedicionVenta(t *testing.T) {
	s := newFakeStore()
	seedSales(s)
	uc := newUseCase(s)

	res, err := uc.ReconcileAndEmit(context.Background(), "ord-2", entity.OrderSideSales, []reconciliation.Event{
		{OrderLineID: "l3", QtyReported: qty(2)},
	}, "", "user-1")
	require.NoError(t, err)
	require.Len(t, res.Movements, 1)

	m := res.Movements[0]
	assert.Equal(t, entity.MovementKindOUT, m.Kind)
	assert.Equal(t, entity.ReasonSale, m.Reason)
	assert.True(t, qty(2).Equal(m.Delta), "delta siempre positivo; Kind da la dirección")
	assert.True(t, qty(1).Equal(s.products["p1"].StockReal))
	assert.True(t, qty(2).Equal(s.products["p1"].StockForecastedOut))
}

// Expedir más de lo que hay en stock real falla con ErrInsufficientStock.
func TestReconcileAndEmit_StockInsuficiente(t *testing.T) {
	s := newFakeStore()
	seedSales(s)
	uc := newUseCase(s)

	_, err := uc.ReconcileAndEmit(context.Background(), "ord-2", entity.OrderSideSales, []reconciliation.Event{
		{OrderLineID: "l3", QtyReported: qty(4)}, // solo hay 3 reales
	}, "", "user-1")
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.movements)
	assert.True(t, qty(3).Equal(s.products["p1"].StockReal))
}

// Las recepciones solo aplican a órdenes de compra y viceversa.
func TestReconcileAndEmit_LadoIncorrecto(t *testing.T) {
	s := newFakeStore()
	seedSales(s)
	uc := newUseCase(s)

	_, err := uc.ReconcileAndEmit(context.Background(), "ord-2", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l3", QtyReported: qty(1)},
	}, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Una orden draft aún no reservó previsión: no acepta cumplimientos.
func TestReconcileAndEmit_OrdenDraftRechazada(t *testing.T) {
	s := newFakeStore()
	seedPurchase(s)
	s.orders["ord-1"].Status = entity.OrderStatusDraft
	uc := newUseCase(s)

	_, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(1)},
	}, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Las notas del lote se copian a cada movimiento emitido.
func TestReconcileAndEmit_NotasDelLoteEnMovimientos(t *testing.T) {
	s := newFakeStore()
	seedPurchase(s)
	uc := newUseCase(s)

	res, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(6)},
		{OrderLineID: "l2", QtyReported: qty(5)},
	}, "camión BL-4471, palet dañado", "user-1")
	require.NoError(t, err)
	require.Len(t, res.Movements, 2)
	for _, m := range res.Movements {
		assert.Equal(t, "camión BL-4471, palet dañado", m.Notes)
	}
}

func TestReconcileAndEmit_OrdenInexistente(t *testing.T) {
	s := newFakeStore()
	uc := newUseCase(s)
	_, err := uc.ReconcileAndEmit(context.Background(), "no-existe", entity.OrderSidePurchase, []reconciliation.Event{
		{OrderLineID: "l1", QtyReported: qty(1)},
	}, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcileAndEmit_LoteVacio(t *testing.T) {
	s := newFakeStore()
	seedPurchase(s)
	uc := newUseCase(s)
	_, err := uc.ReconcileAndEmit(context.Background(), "ord-1", entity.OrderSidePurchase, nil, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
