package repository

import (
	"time"

	"github.com/verone/stock-api/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos.
type MovementFilter struct {
	ProductID   string
	OrderLineID string
	Kind        string // IN | OUT | vacío
	Reason      string
	From, To    *time.Time
	Limit       int
	Offset      int
}

// MovementRepository puerto de persistencia para movimientos de stock.
// Ledger append-only: solo Create y lecturas; no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	List(filter MovementFilter) ([]*entity.Movement, error)
	ListByBatch(batchID string) ([]*entity.Movement, error)
}
