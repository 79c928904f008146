package entity

import "time"

// Roles de usuario del back-office.
const (
	RoleAdmin    = "admin"
	RoleStock    = "stock"    // operario de almacén: recepciones y expediciones
	RoleCommerce = "commerce" // comercial: órdenes y catálogo en lectura
)

// User usuario del back-office (el portal afiliados y la tienda pública
// autentican contra el backend alojado, fuera de este servicio).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
