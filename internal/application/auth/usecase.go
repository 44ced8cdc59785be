package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación y cuenta propia: login, auto-registro de viewers
// y edición del perfil.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	tx           usecase.TxRunner
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, businessRepo repository.BusinessRepository, tx usecase.TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, businessRepo: businessRepo, tx: tx, jwtCfg: jwtCfg}
}

// NormalizeEmail minúsculas y sin espacios; la unicidad es case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifica credenciales y emite el JWT. Una cuenta inactiva con
// credenciales correctas falla con ErrAccountSuspended, no con credenciales
// inválidas, para que el cliente pueda mostrar "Account suspended".
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountSuspended
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Claims{
		UserID:     user.ID,
		BusinessID: user.BusinessID,
		Role:       user.Role,
		Superuser:  user.IsSuperuser,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(user)}, nil
}

// RegisterViewer auto-registro público: siempre rol viewer, negocio opcional.
// Un business_id inexistente es un error de validación del payload (400),
// no un 404: aquí no se está consultando un recurso. El nuevo usuario es el
// actor de su propio evento de bitácora.
func (uc *AuthUseCase) RegisterViewer(ctx context.Context, in dto.ViewerRegisterRequest) (*dto.UserResponse, error) {
	var businessID *string
	if in.BusinessID != nil {
		business, err := uc.businessRepo.GetByID(*in.BusinessID)
		if err != nil {
			return nil, err
		}
		if business == nil {
			return nil, domain.ErrBusinessNotFound
		}
		businessID = &business.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleViewer,
		BusinessID:   businessID,
		IsActive:     true,
		DateJoined:   time.Now(),
		UpdatedAt:    time.Now(),
	}

	err = uc.tx.Run(ctx, func(users repository.UserRepository, _ repository.BusinessRepository, _ repository.ProductRepository, audit repository.AuditLogRepository) error {
		if err := users.Create(user); err != nil {
			return err
		}
		return audit.Create(entity.NewAuditLog(
			entity.ActionViewerRegistered, &user.ID, businessID,
			"user", user.ID, map[string]any{"role": entity.RoleViewer},
		))
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToUserResponse(user), nil
}

// UpdateProfile edita nombre/apellido y opcionalmente cambia la contraseña
// (exige la contraseña actual).
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	changed := false
	if in.FirstName.Set && in.FirstName.Value != nil {
		user.FirstName = *in.FirstName.Value
		changed = true
	}
	if in.LastName.Set && in.LastName.Value != nil {
		user.LastName = *in.LastName.Value
		changed = true
	}
	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, domain.ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		changed = true
	}
	if changed {
		user.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return dto.ToUserResponse(user), nil
}
