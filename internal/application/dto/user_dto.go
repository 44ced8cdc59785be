package dto

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CreateBusinessOwnerRequest alta atómica de negocio + owner (solo admin).
type CreateBusinessOwnerRequest struct {
	BusinessName  string `json:"business_name" validate:"required,min=1,max=255"`
	OwnerEmail    string `json:"owner_email" validate:"required,email"`
	OwnerPassword string `json:"owner_password" validate:"required,min=8"`
	FirstName     string `json:"first_name" validate:"omitempty,max=150"`
	LastName      string `json:"last_name" validate:"omitempty,max=150"`
}

// CreateUserRequest alta de usuario de negocio (admin o business_owner).
// BusinessID solo lo respeta el flujo admin; para un owner se fuerza su negocio.
type CreateUserRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Role       string  `json:"role" validate:"required,oneof=admin business_owner editor approver viewer"`
	BusinessID *string `json:"business_id" validate:"omitempty,uuid"`
	FirstName  string  `json:"first_name" validate:"omitempty,max=150"`
	LastName   string  `json:"last_name" validate:"omitempty,max=150"`
}

// UpdateUserRequest update parcial. Optional distingue omitido de null:
// business_id null desvincula el negocio, business_id omitido no lo toca.
type UpdateUserRequest struct {
	Email      Optional[string] `json:"email"`
	Role       Optional[string] `json:"role"`
	IsActive   Optional[bool]   `json:"is_active"`
	FirstName  Optional[string] `json:"first_name"`
	LastName   Optional[string] `json:"last_name"`
	BusinessID Optional[string] `json:"business_id"`
}

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	BusinessID *string   `json:"business_id"`
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}

// ToUserResponse mapea la entidad a su DTO de salida.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		BusinessID: u.BusinessID,
		IsActive:   u.IsActive,
		DateJoined: u.DateJoined,
	}
}
