package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// ProductFilter criterios de listado según el rol del solicitante.
// Los campos nil no filtran; el scoping por tenant/rol lo decide el use case.
type ProductFilter struct {
	BusinessID  *string
	CreatedByID *string
	Status      *string
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, error)
	// ApprovedIDs ids de productos aprobados ordenados por updated_at desc
	// (fuente del cache del listado público).
	ApprovedIDs() ([]string, error)
	// GetApprovedByIDs materializa el listado público: filtra ids que ya no
	// están aprobados y ordena por updated_at descendente.
	GetApprovedByIDs(ids []string) ([]*entity.Product, error)
	Delete(id string) error
}
