package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// BusinessUseCase administración de negocios (solo rutas admin).
type BusinessUseCase struct {
	businessRepo repository.BusinessRepository
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(businessRepo repository.BusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{businessRepo: businessRepo}
}

// List negocios ordenados por nombre con totales de usuarios y productos.
func (uc *BusinessUseCase) List() ([]*dto.BusinessResponse, error) {
	summaries, err := uc.businessRepo.ListSummaries()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BusinessResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.ToBusinessResponse(s))
	}
	return out, nil
}

// Update renombra un negocio. El nombre es único en el sistema.
func (uc *BusinessUseCase) Update(id string, in dto.UpdateBusinessRequest) error {
	business, err := uc.businessRepo.GetByID(id)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}
	business.Name = strings.TrimSpace(in.Name)
	business.UpdatedAt = time.Now()
	return uc.businessRepo.Update(business)
}

// Delete elimina un negocio. Los productos caen en cascada; si todavía hay
// usuarios vinculados la FK lo bloquea y se reporta como error de validación.
func (uc *BusinessUseCase) Delete(id string) error {
	business, err := uc.businessRepo.GetByID(id)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}
	return uc.businessRepo.Delete(id)
}
