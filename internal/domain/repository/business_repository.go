package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// BusinessSummary negocio con agregados para el listado administrativo.
type BusinessSummary struct {
	Business      entity.Business
	OwnerEmail    *string
	TotalUsers    int
	TotalProducts int
}

// BusinessRepository define el puerto de persistencia para Business (DIP).
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	Update(business *entity.Business) error
	// SetOwner asigna el owner después de crear el usuario (back-fill en la misma tx).
	SetOwner(businessID, ownerID string) error
	// ListSummaries listado admin ordenado por nombre con totales de usuarios/productos.
	ListSummaries() ([]*BusinessSummary, error)
	// Delete devuelve domain.ErrBusinessHasUsers si hay usuarios vinculados (FK PROTECT).
	Delete(id string) error
}
