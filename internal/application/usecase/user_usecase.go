package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// UserUseCase ciclo de vida de tenants y usuarios bajo autorización por rol.
// Las verificaciones gruesas viven en el middleware HTTP; aquí se re-validan
// las reglas finas (defensa en profundidad) y toda mutación corre en una
// transacción junto con su entrada de bitácora.
type UserUseCase struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	tx           TxRunner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, businessRepo repository.BusinessRepository, tx TxRunner) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, businessRepo: businessRepo, tx: tx}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CreateBusinessOwner crea atómicamente el negocio y su owner, y asigna el
// owner al negocio. Solo admin. Si el email del owner ya existe, la
// transacción revierte también el negocio recién creado.
func (uc *UserUseCase) CreateBusinessOwner(ctx context.Context, actor *entity.User, in dto.CreateBusinessOwnerRequest) (*dto.UserResponse, error) {
	if !actor.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	hash, err := hashPassword(in.OwnerPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	business := &entity.Business{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.BusinessName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &entity.User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(in.OwnerEmail),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleBusinessOwner,
		BusinessID:   &business.ID,
		IsActive:     true,
		DateJoined:   now,
		UpdatedAt:    now,
	}

	err = uc.tx.Run(ctx, func(users repository.UserRepository, businesses repository.BusinessRepository, _ repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := businesses.Create(business); err != nil {
			return err
		}
		if err := users.Create(owner); err != nil {
			return err
		}
		if err := businesses.SetOwner(business.ID, owner.ID); err != nil {
			return err
		}
		return audit.Create(entity.NewAuditLog(
			entity.ActionBusinessOwnerCreated, &actor.ID, &business.ID,
			"user", owner.ID,
			map[string]any{"business_id": business.ID, "role": entity.RoleBusinessOwner},
		))
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(owner), nil
}

// CreateBusinessUser crea un usuario de negocio. El flujo depende del rol
// del actor:
//   - admin: no puede crear business_owner por aquí (endpoint dedicado);
//     role=admin crea sin negocio; si no, resuelve el negocio del business_id
//     explícito o usa el suyo.
//   - business_owner: solo editor/approver, siempre en su propio negocio.
//   - cualquier otro rol: prohibido.
func (uc *UserUseCase) CreateBusinessUser(ctx context.Context, actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Role == entity.RoleBusinessOwner && !actor.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	var businessID *string
	switch {
	case actor.HasRole(entity.RoleBusinessOwner):
		if !entity.OwnerManagedRoles[in.Role] {
			return nil, domain.ErrForbidden
		}
		businessID = actor.BusinessID
	case actor.HasRole(entity.RoleAdmin):
		switch {
		case in.Role == entity.RoleBusinessOwner:
			return nil, domain.ErrOwnerEndpoint
		case in.Role == entity.RoleAdmin:
			businessID = nil
		case in.BusinessID != nil:
			business, err := uc.businessRepo.GetByID(*in.BusinessID)
			if err != nil {
				return nil, err
			}
			if business != nil {
				businessID = &business.ID
			}
		default:
			businessID = actor.BusinessID
		}
	default:
		return nil, domain.ErrForbidden
	}

	// Invariante post-resolución: todo rol fuera de admin/viewer necesita negocio.
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleViewer && businessID == nil {
		return nil, domain.ErrBusinessRequired
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		BusinessID:   businessID,
		IsActive:     true,
		DateJoined:   now,
		UpdatedAt:    now,
	}

	err = uc.tx.Run(ctx, func(users repository.UserRepository, _ repository.BusinessRepository, _ repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := users.Create(user); err != nil {
			return err
		}
		return audit.Create(entity.NewAuditLog(
			entity.ActionUserCreated, &actor.ID, businessID,
			"user", user.ID, map[string]any{"role": in.Role},
		))
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// GetScopedUser resuelve un usuario visible para el actor: admin ve todo;
// un no-admin solo usuarios de su negocio. Fuera de alcance devuelve
// (nil, nil), que la capa HTTP traduce a 404 para no filtrar existencia.
func (uc *UserUseCase) GetScopedUser(actor *entity.User, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !actor.HasRole(entity.RoleAdmin) && !user.SameBusiness(actor.BusinessID) {
		return nil, nil
	}
	return user, nil
}

// UpdateBusinessUser aplica un update parcial con semántica omitido-vs-null.
// Un business_owner solo toca usuarios de su negocio y solo puede asignar
// editor/approver; email y reasignación de negocio quedan reservados a admin.
// Tras aplicar los cambios se re-imponen los invariantes de rol/negocio:
// rol admin fuerza negocio nil, y un rol fuera de {admin, viewer} sin negocio
// revierte el update completo.
func (uc *UserUseCase) UpdateBusinessUser(ctx context.Context, actor *entity.User, user *entity.User, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	isAdmin := actor.HasRole(entity.RoleAdmin)
	if !isAdmin {
		if !actor.HasRole(entity.RoleBusinessOwner) {
			return nil, domain.ErrForbidden
		}
		if !user.SameBusiness(actor.BusinessID) {
			return nil, domain.ErrForbidden
		}
		if in.Role.Set && (in.Role.Value == nil || !entity.OwnerManagedRoles[*in.Role.Value]) {
			return nil, domain.ErrForbidden
		}
		if in.Email.Set || in.BusinessID.Set {
			return nil, domain.ErrForbidden
		}
	}

	var changed []string

	if in.Email.Set && in.Email.Value != nil {
		email := normalizeEmail(*in.Email.Value)
		if email != user.Email {
			taken, err := uc.userRepo.EmailTaken(email, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
			changed = append(changed, "email")
		}
	}
	if in.Role.Set && in.Role.Value != nil && *in.Role.Value != user.Role {
		user.Role = *in.Role.Value
		changed = append(changed, "role")
	}
	if in.IsActive.Set && in.IsActive.Value != nil && *in.IsActive.Value != user.IsActive {
		user.IsActive = *in.IsActive.Value
		changed = append(changed, "is_active")
	}
	if in.FirstName.Set && in.FirstName.Value != nil && *in.FirstName.Value != user.FirstName {
		user.FirstName = *in.FirstName.Value
		changed = append(changed, "first_name")
	}
	if in.LastName.Set && in.LastName.Value != nil && *in.LastName.Value != user.LastName {
		user.LastName = *in.LastName.Value
		changed = append(changed, "last_name")
	}
	if in.BusinessID.Set {
		if in.BusinessID.Value == nil {
			if user.BusinessID != nil {
				user.BusinessID = nil
				changed = append(changed, "business")
			}
		} else {
			business, err := uc.businessRepo.GetByID(*in.BusinessID.Value)
			if err != nil {
				return nil, err
			}
			if business == nil {
				return nil, domain.ErrNotFound
			}
			if user.BusinessID == nil || *user.BusinessID != business.ID {
				user.BusinessID = &business.ID
				changed = append(changed, "business")
			}
		}
	}

	// Invariantes post-cambio.
	if user.Role == entity.RoleAdmin && user.BusinessID != nil {
		user.BusinessID = nil
		if !contains(changed, "business") {
			changed = append(changed, "business")
		}
	}
	if user.Role != entity.RoleAdmin && user.Role != entity.RoleViewer && user.BusinessID == nil {
		return nil, domain.ErrBusinessRequired
	}

	if len(changed) == 0 {
		return dto.ToUserResponse(user), nil
	}

	user.UpdatedAt = time.Now()
	err := uc.tx.Run(ctx, func(users repository.UserRepository, _ repository.BusinessRepository, _ repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := users.Update(user); err != nil {
			return err
		}
		return audit.Create(entity.NewAuditLog(
			entity.ActionUserUpdated, &actor.ID, user.BusinessID,
			"user", user.ID, map[string]any{"updated_fields": changed},
		))
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// DeleteBusinessUser elimina un usuario. Admin puede borrar cualquier cuenta
// no-admin; un business_owner solo editores/approvers de su negocio. El evento
// de bitácora captura rol y negocio antes de que la fila desaparezca.
func (uc *UserUseCase) DeleteBusinessUser(ctx context.Context, actor *entity.User, user *entity.User) error {
	switch {
	case actor.HasRole(entity.RoleAdmin):
		if user.Role == entity.RoleAdmin {
			return domain.ErrAdminUserProtected
		}
	case actor.HasRole(entity.RoleBusinessOwner):
		if !user.SameBusiness(actor.BusinessID) || !entity.OwnerManagedRoles[user.Role] {
			return domain.ErrForbidden
		}
	default:
		return domain.ErrForbidden
	}

	deletedID, deletedRole, deletedBusiness := user.ID, user.Role, user.BusinessID
	return uc.tx.Run(ctx, func(users repository.UserRepository, _ repository.BusinessRepository, _ repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := users.Delete(deletedID); err != nil {
			return err
		}
		return audit.Create(entity.NewAuditLog(
			entity.ActionUserDeleted, &actor.ID, deletedBusiness,
			"user", deletedID, map[string]any{"role": deletedRole},
		))
	})
}

// List usuarios visibles para el actor: admin todos, owner su negocio.
func (uc *UserUseCase) List(actor *entity.User, limit, offset int) ([]*dto.UserResponse, error) {
	var businessID *string
	if !actor.HasRole(entity.RoleAdmin) {
		businessID = actor.BusinessID
	}
	users, err := uc.userRepo.List(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
