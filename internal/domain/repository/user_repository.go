package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail busca por email normalizado (case-insensitive).
	GetByEmail(email string) (*entity.User, error)
	// EmailTaken verifica unicidad case-insensitive excluyendo un ID (self en updates).
	EmailTaken(email, excludeID string) (bool, error)
	Update(user *entity.User) error
	// List: businessID nil lista todos (admin); no-nil filtra por tenant.
	List(businessID *string, limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
