package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProductUseCase ciclo de vida del producto y su máquina de estados de
// aprobación. Toda mutación escribe bitácora en la misma transacción e
// invalida el cache del listado público.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	businessRepo repository.BusinessRepository
	tx           TxRunner
	cache        ProductCache
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, businessRepo repository.BusinessRepository, tx TxRunner, cache ProductCache) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, businessRepo: businessRepo, tx: tx, cache: cache}
}

func canEdit(actor *entity.User) bool {
	return actor.IsSuperuser || entity.ProductEditRoles[actor.Role]
}

func canApprove(actor *entity.User) bool {
	return actor.IsSuperuser || entity.ProductApproveRoles[actor.Role]
}

// Create crea un producto en estado draft. Requiere rol de edición y un
// negocio resoluble: el del actor, o el indicado si el actor es admin.
// Una imagen subida limpia cualquier image_url.
func (uc *ProductUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !canEdit(actor) {
		return nil, domain.ErrForbidden
	}
	if actor.BusinessID == nil && !actor.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrBusinessRequired
	}

	businessID := actor.BusinessID
	if actor.HasRole(entity.RoleAdmin) && in.BusinessID != nil {
		business, err := uc.businessRepo.GetByID(*in.BusinessID)
		if err != nil {
			return nil, err
		}
		if business == nil {
			return nil, domain.ErrNotFound
		}
		businessID = &business.ID
	}
	if businessID == nil {
		return nil, domain.ErrBusinessRequired
	}

	imageURL := in.ImageURL
	if in.Image != "" {
		imageURL = ""
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		BusinessID:      *businessID,
		CreatedByID:     actor.ID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price.Round(2),
		Image:           in.Image,
		ImageURL:        imageURL,
		Status:          entity.StatusDraft,
		RejectionReason: "",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.tx.Run(ctx, func(_ repository.UserRepository, _ repository.BusinessRepository, products repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := products.Create(product); err != nil {
			return err
		}
		return audit.Create(entity.NewAuditLog(
			entity.ActionProductCreated, &actor.ID, &product.BusinessID,
			"product", product.ID, map[string]any{"status": product.Status},
		))
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	return dto.ToProductResponse(product), nil
}

// Update edición parcial. Un editor no puede tocar productos en
// pending_approval; la reasignación de negocio es solo de admin. Editar un
// producto approved lo regresa a pending_approval, y en draft/pending el
// motivo de rechazo queda limpio.
func (uc *ProductUseCase) Update(ctx context.Context, actor *entity.User, product *entity.Product, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !canEdit(actor) {
		return nil, domain.ErrForbidden
	}
	// El candado aplica por rol, sin excepción para superusuarios.
	if actor.Role == entity.RoleEditor && product.Status == entity.StatusPendingApproval {
		return nil, domain.ErrPendingEditLocked
	}
	if in.BusinessID.Set && !actor.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	if in.BusinessID.Set && in.BusinessID.Value != nil {
		business, err := uc.businessRepo.GetByID(*in.BusinessID.Value)
		if err != nil {
			return nil, err
		}
		if business == nil {
			return nil, domain.ErrNotFound
		}
		product.BusinessID = business.ID
	}
	if in.Name.Set && in.Name.Value != nil {
		product.Name = *in.Name.Value
	}
	if in.Description.Set && in.Description.Value != nil {
		product.Description = *in.Description.Value
	}
	if in.Price.Set && in.Price.Value != nil {
		product.Price = in.Price.Value.Round(2)
	}
	// Exclusividad imagen/URL: la que llega limpia a la otra.
	if in.Image.Set && in.Image.Value != nil && *in.Image.Value != "" {
		product.Image = *in.Image.Value
		product.ImageURL = ""
	} else if in.ImageURL.Set && in.ImageURL.Value != nil && *in.ImageURL.Value != "" {
		product.ImageURL = *in.ImageURL.Value
		product.Image = ""
	}

	if product.Status == entity.StatusApproved {
		product.Status = entity.StatusPendingApproval
	}
	if product.Status == entity.StatusDraft || product.Status == entity.StatusPendingApproval {
		product.RejectionReason = ""
	}
	product.UpdatedAt = time.Now()

	err := uc.tx.Run(ctx, func(_ repository.UserRepository, _ repository.BusinessRepository, products repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := products.Update(product); err != nil {
			return err
		}
		return audit.Create(entity.NewAuditLog(
			entity.ActionProductUpdated, &actor.ID, &product.BusinessID,
			"product", product.ID, map[string]any{"status": product.Status},
		))
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	return dto.ToProductResponse(product), nil
}

// SubmitForApproval transición draft|rejected → pending_approval; limpia el
// motivo de rechazo del intento anterior.
func (uc *ProductUseCase) SubmitForApproval(ctx context.Context, actor *entity.User, product *entity.Product) (*dto.ProductResponse, error) {
	if !canEdit(actor) {
		return nil, domain.ErrForbidden
	}
	if product.Status != entity.StatusDraft && product.Status != entity.StatusRejected {
		return nil, domain.ErrNotSubmittable
	}
	product.Status = entity.StatusPendingApproval
	product.RejectionReason = ""
	product.UpdatedAt = time.Now()

	if err := uc.saveWithAudit(ctx, actor, product, entity.ActionProductSubmitted, nil); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Approve transición pending_approval → approved. Solo approver/admin.
func (uc *ProductUseCase) Approve(ctx context.Context, actor *entity.User, product *entity.Product) (*dto.ProductResponse, error) {
	if !canApprove(actor) {
		return nil, domain.ErrForbidden
	}
	if product.Status != entity.StatusPendingApproval {
		return nil, domain.ErrNotPending
	}
	product.Status = entity.StatusApproved
	product.UpdatedAt = time.Now()

	if err := uc.saveWithAudit(ctx, actor, product, entity.ActionProductApproved, nil); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Reject transición pending_approval → rejected con motivo obligatorio
// (se almacena recortado).
func (uc *ProductUseCase) Reject(ctx context.Context, actor *entity.User, product *entity.Product, reason string) (*dto.ProductResponse, error) {
	if !canApprove(actor) {
		return nil, domain.ErrForbidden
	}
	if product.Status != entity.StatusPendingApproval {
		return nil, domain.ErrNotPending
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}
	product.Status = entity.StatusRejected
	product.RejectionReason = reason
	product.UpdatedAt = time.Now()

	if err := uc.saveWithAudit(ctx, actor, product, entity.ActionProductRejected, map[string]any{"reason": reason}); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Delete borrado definitivo, solo admin. La entrada de bitácora se escribe
// antes del DELETE para capturar el estado final del producto.
func (uc *ProductUseCase) Delete(ctx context.Context, actor *entity.User, product *entity.Product) error {
	if !actor.HasRole(entity.RoleAdmin) {
		return domain.ErrForbidden
	}
	err := uc.tx.Run(ctx, func(_ repository.UserRepository, _ repository.BusinessRepository, products repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := audit.Create(entity.NewAuditLog(
			entity.ActionProductDeleted, &actor.ID, &product.BusinessID,
			"product", product.ID, map[string]any{"status": product.Status},
		)); err != nil {
			return err
		}
		return products.Delete(product.ID)
	})
	if err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}

// GetScoped resuelve un producto visible para el actor. Fuera de alcance
// devuelve (nil, nil) y la capa HTTP responde 404, nunca 403, para no
// revelar existencia entre tenants.
func (uc *ProductUseCase) GetScoped(actor *entity.User, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if !actor.HasRole(entity.RoleAdmin) {
		if actor.BusinessID == nil || *actor.BusinessID != product.BusinessID {
			return nil, nil
		}
		if actor.Role == entity.RoleViewer && product.Status != entity.StatusApproved {
			return nil, nil
		}
	}
	return product, nil
}

// List productos visibles para el actor: admin todos; no-admin su negocio;
// un editor además solo lo que creó; un viewer solo aprobados.
func (uc *ProductUseCase) List(actor *entity.User, limit, offset int) (*dto.ProductListResponse, error) {
	filter := repository.ProductFilter{Limit: limit, Offset: offset}
	if !actor.HasRole(entity.RoleAdmin) {
		filter.BusinessID = actor.BusinessID
		if actor.Role == entity.RoleEditor {
			filter.CreatedByID = &actor.ID
		}
		if actor.Role == entity.RoleViewer {
			approved := entity.StatusApproved
			filter.Status = &approved
		}
	}
	list, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// PublicList listado público cache-backed: solo productos approved, más
// recientes primero. El cache guarda únicamente los ids; un miss (o un Redis
// caído) reconsulta la DB y repuebla con TTL corto.
func (uc *ProductUseCase) PublicList(ctx context.Context) ([]dto.PublicProductResponse, error) {
	ids, ok := uc.cache.GetApprovedIDs(ctx)
	if !ok {
		var err error
		ids, err = uc.productRepo.ApprovedIDs()
		if err != nil {
			return nil, err
		}
		uc.cache.SetApprovedIDs(ctx, ids)
	}
	products, err := uc.productRepo.GetApprovedByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PublicProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToPublicProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) saveWithAudit(ctx context.Context, actor *entity.User, product *entity.Product, action string, extra map[string]any) error {
	metadata := map[string]any{"status": product.Status}
	for k, v := range extra {
		metadata[k] = v
	}
	err := uc.tx.Run(ctx, func(_ repository.UserRepository, _ repository.BusinessRepository, products repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := products.Update(product); err != nil {
			return err
		}
		return audit.Create(entity.NewAuditLog(action, &actor.ID, &product.BusinessID, "product", product.ID, metadata))
	})
	if err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}
