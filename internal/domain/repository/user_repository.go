package repository

import "github.com/verone/stock-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios del back-office.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
