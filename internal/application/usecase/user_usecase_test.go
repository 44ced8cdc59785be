package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func (f *fixture) seedUser(u *entity.User) *entity.User {
	_ = f.users.Create(u)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateBusinessOwner
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBusinessOwner_CreaNegocioYOwnerAtomicamente(t *testing.T) {
	f := newFixture()

	out, err := f.userUC.CreateBusinessOwner(context.Background(), adminActor(), dto.CreateBusinessOwnerRequest{
		BusinessName:  "  Cafetería Central  ",
		OwnerEmail:    "Dueno@Example.com",
		OwnerPassword: "secreta123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleBusinessOwner, out.Role)
	assert.Equal(t, "dueno@example.com", out.Email, "el email se normaliza a minúsculas")
	require.NotNil(t, out.BusinessID)

	business, err := f.businesses.GetByID(*out.BusinessID)
	require.NoError(t, err)
	require.NotNil(t, business)
	assert.Equal(t, "Cafetería Central", business.Name, "el nombre se almacena recortado")
	require.NotNil(t, business.OwnerID)
	assert.Equal(t, out.ID, *business.OwnerID, "el owner queda asignado al negocio")

	last := f.audit.last()
	require.NotNil(t, last)
	assert.Equal(t, entity.ActionBusinessOwnerCreated, last.Action)
}

func TestCreateBusinessOwner_EmailDuplicadoRevierteElNegocio(t *testing.T) {
	f := newFixture()

	first, err := f.userUC.CreateBusinessOwner(context.Background(), adminActor(), dto.CreateBusinessOwnerRequest{
		BusinessName: "Cafetería Central", OwnerEmail: "dueno@example.com", OwnerPassword: "secreta123",
	})
	require.NoError(t, err)

	// Mismo email, otro nombre de negocio: el alta del owner falla y la
	// transacción debe revertir también el negocio recién creado.
	_, err = f.userUC.CreateBusinessOwner(context.Background(), adminActor(), dto.CreateBusinessOwnerRequest{
		BusinessName: "Cafetería Norte", OwnerEmail: "dueno@example.com", OwnerPassword: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	summaries, err := f.businesses.ListSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 1, "no debe quedar un negocio huérfano del intento fallido")
	assert.Equal(t, "Cafetería Central", summaries[0].Business.Name)
	assert.Equal(t, 1, f.audit.count(), "solo el alta exitosa deja evento de bitácora")

	kept, err := f.businesses.GetByID(*first.BusinessID)
	require.NoError(t, err)
	assert.NotNil(t, kept, "el negocio del primer alta sobrevive intacto")
}

func TestCreateBusinessOwner_SoloAdmin(t *testing.T) {
	f := newFixture()
	_, err := f.userUC.CreateBusinessOwner(context.Background(), ownerActor(bizA), dto.CreateBusinessOwnerRequest{
		BusinessName: "Otro", OwnerEmail: "x@example.com", OwnerPassword: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateBusinessUser — matriz de roles
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBusinessUser_OwnerSoloEditorYApprover(t *testing.T) {
	f := newFixture()
	actor := ownerActor(bizA)

	for _, role := range []string{entity.RoleEditor, entity.RoleApprover} {
		out, err := f.userUC.CreateBusinessUser(context.Background(), actor, dto.CreateUserRequest{
			Email: role + "@example.com", Password: "secreta123", Role: role,
		})
		require.NoError(t, err, "un owner puede crear %s", role)
		require.NotNil(t, out.BusinessID)
		assert.Equal(t, bizA, *out.BusinessID, "el usuario queda en el negocio del owner")
	}

	for _, role := range []string{entity.RoleAdmin, entity.RoleBusinessOwner, entity.RoleViewer} {
		_, err := f.userUC.CreateBusinessUser(context.Background(), actor, dto.CreateUserRequest{
			Email: role + "2@example.com", Password: "secreta123", Role: role,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, "un owner no puede crear %s", role)
	}
}

func TestCreateBusinessUser_OwnerIgnoraBusinessIDExplicito(t *testing.T) {
	f := newFixture()
	out, err := f.userUC.CreateBusinessUser(context.Background(), ownerActor(bizA), dto.CreateUserRequest{
		Email: "e@example.com", Password: "secreta123", Role: entity.RoleEditor,
		BusinessID: strPtr(bizB),
	})
	require.NoError(t, err)
	require.NotNil(t, out.BusinessID)
	assert.Equal(t, bizA, *out.BusinessID, "el owner siempre crea en su propio negocio")
}

func TestCreateBusinessUser_AdminRedirigidoAlEndpointDeOwner(t *testing.T) {
	f := newFixture()
	_, err := f.userUC.CreateBusinessUser(context.Background(), adminActor(), dto.CreateUserRequest{
		Email: "o@example.com", Password: "secreta123", Role: entity.RoleBusinessOwner,
	})
	assert.ErrorIs(t, err, domain.ErrOwnerEndpoint)
}

func TestCreateBusinessUser_AdminCreaAdminSinNegocio(t *testing.T) {
	f := newFixture()
	out, err := f.userUC.CreateBusinessUser(context.Background(), adminActor(), dto.CreateUserRequest{
		Email: "a@example.com", Password: "secreta123", Role: entity.RoleAdmin,
		BusinessID: strPtr(bizA), // se ignora: un admin no pertenece a ningún negocio
	})
	require.NoError(t, err)
	assert.Nil(t, out.BusinessID, "un admin nunca queda vinculado a un negocio")
}

func TestCreateBusinessUser_AdminResuelveNegocioExplicito(t *testing.T) {
	f := newFixture()
	f.seedBusiness(bizB, "Negocio B")
	out, err := f.userUC.CreateBusinessUser(context.Background(), adminActor(), dto.CreateUserRequest{
		Email: "e@example.com", Password: "secreta123", Role: entity.RoleEditor,
		BusinessID: strPtr(bizB),
	})
	require.NoError(t, err)
	require.NotNil(t, out.BusinessID)
	assert.Equal(t, bizB, *out.BusinessID)
}

func TestCreateBusinessUser_RolConNegocioObligatorio(t *testing.T) {
	f := newFixture()
	// Admin sin negocio propio y sin business_id: un editor no puede quedar suelto.
	_, err := f.userUC.CreateBusinessUser(context.Background(), adminActor(), dto.CreateUserRequest{
		Email: "e@example.com", Password: "secreta123", Role: entity.RoleEditor,
	})
	assert.ErrorIs(t, err, domain.ErrBusinessRequired)

	// Un viewer sí puede existir sin negocio.
	out, err := f.userUC.CreateBusinessUser(context.Background(), adminActor(), dto.CreateUserRequest{
		Email: "v@example.com", Password: "secreta123", Role: entity.RoleViewer,
	})
	require.NoError(t, err)
	assert.Nil(t, out.BusinessID)
}

func TestCreateBusinessUser_EditorYViewerNoPuedenCrear(t *testing.T) {
	f := newFixture()
	for _, actor := range []*entity.User{editorActor(bizA), viewerActor(bizA), approverActor(bizA)} {
		_, err := f.userUC.CreateBusinessUser(context.Background(), actor, dto.CreateUserRequest{
			Email: "x@example.com", Password: "secreta123", Role: entity.RoleViewer,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s no gestiona usuarios", actor.Role)
	}
}

func TestCreateBusinessUser_EmailDuplicado(t *testing.T) {
	f := newFixture()
	f.seedUser(&entity.User{ID: "u1", Email: "e@example.com", Role: entity.RoleViewer})

	_, err := f.userUC.CreateBusinessUser(context.Background(), adminActor(), dto.CreateUserRequest{
		Email: "E@Example.com", Password: "secreta123", Role: entity.RoleViewer,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists,
		"la unicidad de email es case-insensitive")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetScopedUser / List
// ──────────────────────────────────────────────────────────────────────────────

func TestGetScopedUser_CrossTenantEsInvisible(t *testing.T) {
	f := newFixture()
	f.seedUser(&entity.User{ID: "u1", Email: "e@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizA)})

	got, err := f.userUC.GetScopedUser(ownerActor(bizB), "u1")
	require.NoError(t, err)
	assert.Nil(t, got, "un usuario de otro negocio no existe para el actor")

	got, err = f.userUC.GetScopedUser(ownerActor(bizA), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = f.userUC.GetScopedUser(adminActor(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got, "admin ve todos los tenants")
}

func TestUserList_OwnerSoloSuNegocio(t *testing.T) {
	f := newFixture()
	f.seedUser(&entity.User{ID: "u1", Email: "a@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizA)})
	f.seedUser(&entity.User{ID: "u2", Email: "b@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizB)})

	out, err := f.userUC.List(ownerActor(bizA), 20, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u1", out[0].ID)

	out, err = f.userUC.List(adminActor(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateBusinessUser
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateBusinessUser_OwnerNoTocaEmailNiNegocio(t *testing.T) {
	f := newFixture()
	user := f.seedUser(&entity.User{ID: "u1", Email: "e@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizA)})

	email := "otro@example.com"
	_, err := f.userUC.UpdateBusinessUser(context.Background(), ownerActor(bizA), user,
		dto.UpdateUserRequest{Email: dto.Optional[string]{Set: true, Value: &email}})
	assert.ErrorIs(t, err, domain.ErrForbidden, "el email queda reservado a admin")

	_, err = f.userUC.UpdateBusinessUser(context.Background(), ownerActor(bizA), user,
		dto.UpdateUserRequest{BusinessID: dto.Optional[string]{Set: true, Value: nil}})
	assert.ErrorIs(t, err, domain.ErrForbidden, "la reasignación de negocio queda reservada a admin")
}

func TestUpdateBusinessUser_OwnerSoloRolesGestionables(t *testing.T) {
	f := newFixture()
	user := f.seedUser(&entity.User{ID: "u1", Email: "e@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizA)})

	admin := entity.RoleAdmin
	_, err := f.userUC.UpdateBusinessUser(context.Background(), ownerActor(bizA), user,
		dto.UpdateUserRequest{Role: dto.Optional[string]{Set: true, Value: &admin}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	approver := entity.RoleApprover
	out, err := f.userUC.UpdateBusinessUser(context.Background(), ownerActor(bizA), user,
		dto.UpdateUserRequest{Role: dto.Optional[string]{Set: true, Value: &approver}})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleApprover, out.Role)
}

func TestUpdateBusinessUser_NullDesvinculaYOmitidoNoToca(t *testing.T) {
	f := newFixture()
	user := f.seedUser(&entity.User{ID: "u1", Email: "v@example.com", Role: entity.RoleViewer, BusinessID: strPtr(bizA)})

	// Campo omitido: el negocio no se toca.
	name := "Nuevo"
	out, err := f.userUC.UpdateBusinessUser(context.Background(), adminActor(), user,
		dto.UpdateUserRequest{FirstName: dto.Optional[string]{Set: true, Value: &name}})
	require.NoError(t, err)
	require.NotNil(t, out.BusinessID)

	// Null explícito: desvincula (válido porque viewer no exige negocio).
	out, err = f.userUC.UpdateBusinessUser(context.Background(), adminActor(), user,
		dto.UpdateUserRequest{BusinessID: dto.Optional[string]{Set: true, Value: nil}})
	require.NoError(t, err)
	assert.Nil(t, out.BusinessID)
}

func TestUpdateBusinessUser_InvarianteRolNegocio(t *testing.T) {
	f := newFixture()
	editor := f.seedUser(&entity.User{ID: "u1", Email: "e@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizA)})

	// Quitar el negocio a un editor viola el invariante.
	_, err := f.userUC.UpdateBusinessUser(context.Background(), adminActor(), editor,
		dto.UpdateUserRequest{BusinessID: dto.Optional[string]{Set: true, Value: nil}})
	assert.ErrorIs(t, err, domain.ErrBusinessRequired)

	// Promover a admin limpia el negocio automáticamente.
	user := f.seedUser(&entity.User{ID: "u2", Email: "e2@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizA)})
	admin := entity.RoleAdmin
	out, err := f.userUC.UpdateBusinessUser(context.Background(), adminActor(), user,
		dto.UpdateUserRequest{Role: dto.Optional[string]{Set: true, Value: &admin}})
	require.NoError(t, err)
	assert.Nil(t, out.BusinessID, "rol admin fuerza negocio nil")
}

func TestUpdateBusinessUser_BitacoraSoloConCambios(t *testing.T) {
	f := newFixture()
	user := f.seedUser(&entity.User{ID: "u1", Email: "e@example.com", FirstName: "Ana",
		Role: entity.RoleEditor, BusinessID: strPtr(bizA)})

	// Mismo valor: no hay cambio, no hay bitácora.
	same := "Ana"
	_, err := f.userUC.UpdateBusinessUser(context.Background(), adminActor(), user,
		dto.UpdateUserRequest{FirstName: dto.Optional[string]{Set: true, Value: &same}})
	require.NoError(t, err)
	assert.Equal(t, 0, f.audit.count(), "un update sin cambios no genera evento")

	nuevo := "Ana María"
	_, err = f.userUC.UpdateBusinessUser(context.Background(), adminActor(), user,
		dto.UpdateUserRequest{FirstName: dto.Optional[string]{Set: true, Value: &nuevo}})
	require.NoError(t, err)
	last := f.audit.last()
	require.NotNil(t, last)
	assert.Equal(t, entity.ActionUserUpdated, last.Action)
	assert.Equal(t, []string{"first_name"}, last.Metadata["updated_fields"])
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteBusinessUser
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteBusinessUser_AdminNoBorraAdmins(t *testing.T) {
	f := newFixture()
	otherAdmin := f.seedUser(&entity.User{ID: "u1", Email: "a@example.com", Role: entity.RoleAdmin})

	err := f.userUC.DeleteBusinessUser(context.Background(), adminActor(), otherAdmin)
	assert.ErrorIs(t, err, domain.ErrAdminUserProtected)
}

func TestDeleteBusinessUser_OwnerSoloSuEquipo(t *testing.T) {
	f := newFixture()
	foreign := f.seedUser(&entity.User{ID: "u1", Email: "e@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizB)})
	viewer := f.seedUser(&entity.User{ID: "u2", Email: "v@example.com", Role: entity.RoleViewer, BusinessID: strPtr(bizA)})
	editor := f.seedUser(&entity.User{ID: "u3", Email: "e3@example.com", Role: entity.RoleEditor, BusinessID: strPtr(bizA)})

	err := f.userUC.DeleteBusinessUser(context.Background(), ownerActor(bizA), foreign)
	assert.ErrorIs(t, err, domain.ErrForbidden, "otro tenant está fuera de alcance")

	err = f.userUC.DeleteBusinessUser(context.Background(), ownerActor(bizA), viewer)
	assert.ErrorIs(t, err, domain.ErrForbidden, "un owner solo gestiona editor/approver")

	err = f.userUC.DeleteBusinessUser(context.Background(), ownerActor(bizA), editor)
	require.NoError(t, err)

	got, _ := f.users.GetByID("u3")
	assert.Nil(t, got)
	last := f.audit.last()
	assert.Equal(t, entity.ActionUserDeleted, last.Action)
	assert.Equal(t, entity.RoleEditor, last.Metadata["role"],
		"la bitácora captura el rol antes del borrado")
}
