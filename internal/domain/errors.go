package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrInvalidQuantity cantidad acumulada reportada fuera de rango:
	// regresión (menor a lo ya cumplido) o sobre-cumplimiento (mayor a lo pedido).
	ErrInvalidQuantity = errors.New("cantidad reportada inválida")
	// ErrUnknownLine el evento referencia una línea que no pertenece a la orden.
	ErrUnknownLine = errors.New("línea de orden desconocida")
)

// PersistenceError reporta un fallo de escritura a mitad de un lote.
// Las líneas ya confirmadas permanecen confirmadas; Pending lista las líneas
// que quedaron sin confirmar para que el caller pueda reenviar el lote
// completo (los deltas ya aplicados recalculan a cero y se omiten).
type PersistenceError struct {
	Pending []string // IDs de líneas no confirmadas, en orden del lote
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("fallo de persistencia, líneas pendientes [%s]: %v",
		strings.Join(e.Pending, ", "), e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
