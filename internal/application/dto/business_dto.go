package dto

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// UpdateBusinessRequest renombrar un negocio (solo admin).
type UpdateBusinessRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// BusinessResponse negocio con agregados para el panel admin.
type BusinessResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	OwnerID       *string   `json:"owner_id"`
	OwnerEmail    *string   `json:"owner_email"`
	TotalUsers    int       `json:"total_users"`
	TotalProducts int       `json:"total_products"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToBusinessResponse mapea el resumen del repositorio al DTO.
func ToBusinessResponse(s *repository.BusinessSummary) *BusinessResponse {
	if s == nil {
		return nil
	}
	return &BusinessResponse{
		ID:            s.Business.ID,
		Name:          s.Business.Name,
		OwnerID:       s.Business.OwnerID,
		OwnerEmail:    s.OwnerEmail,
		TotalUsers:    s.TotalUsers,
		TotalProducts: s.TotalProducts,
		CreatedAt:     s.Business.CreatedAt,
		UpdatedAt:     s.Business.UpdatedAt,
	}
}
