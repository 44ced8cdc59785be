package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CreateProductRequest alta de producto. Image e ImageURL son excluyentes;
// si ambos vienen, Image gana y ImageURL se descarta.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Image       string          `json:"image"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	BusinessID  *string         `json:"business_id" validate:"omitempty,uuid"` // solo admin
}

// UpdateProductRequest update parcial con semántica omitido-vs-null.
type UpdateProductRequest struct {
	Name        Optional[string]          `json:"name"`
	Description Optional[string]          `json:"description"`
	Price       Optional[decimal.Decimal] `json:"price"`
	Image       Optional[string]          `json:"image"`
	ImageURL    Optional[string]          `json:"image_url"`
	BusinessID  Optional[string]          `json:"business_id"` // reasignación, solo admin
}

// RejectProductRequest motivo obligatorio del rechazo.
type RejectProductRequest struct {
	Reason string `json:"reason"`
}

// ProductResponse salida completa para usuarios autenticados.
type ProductResponse struct {
	ID              string          `json:"id"`
	BusinessID      string          `json:"business_id"`
	CreatedByID     string          `json:"created_by"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PublicProductResponse proyección reducida del listado público (sin estado
// ni autor: solo se publican productos aprobados).
type PublicProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:              p.ID,
		BusinessID:      p.BusinessID,
		CreatedByID:     p.CreatedByID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Image:           p.Image,
		ImageURL:        p.ImageURL,
		Status:          p.Status,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToPublicProductResponse mapea a la proyección pública.
func ToPublicProductResponse(p *entity.Product) PublicProductResponse {
	return PublicProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		ImageURL:    p.ImageURL,
		UpdatedAt:   p.UpdatedAt,
	}
}
