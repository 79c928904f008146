package repository

import "github.com/verone/stock-api/internal/domain/entity"

// OrderFilter filtros para listado de órdenes.
type OrderFilter struct {
	Side   string // purchase | sales | vacío = ambos
	Status string
	Limit  int
	Offset int
}

// OrderRepository puerto de persistencia para órdenes (agregado sin líneas;
// las líneas se manejan en OrderLineRepository).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List(filter OrderFilter) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
	// Delete elimina solo órdenes draft o cancelled; devuelve domain.ErrConflict en otro caso.
	Delete(id string) error
}
