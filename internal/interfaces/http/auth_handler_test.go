package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
)

// Fakes mínimos para levantar el endpoint de registro contra el handler real.

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(u *entity.User) error                  { r.users[u.ID] = u; return nil }
func (r *stubUserRepo) GetByID(id string) (*entity.User, error)      { return r.users[id], nil }
func (r *stubUserRepo) GetByEmail(string) (*entity.User, error)      { return nil, nil }
func (r *stubUserRepo) EmailTaken(string, string) (bool, error)      { return false, nil }
func (r *stubUserRepo) Update(*entity.User) error                    { return nil }
func (r *stubUserRepo) List(*string, int, int) ([]*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Delete(string) error                          { return nil }

type stubBusinessRepo struct {
	businesses map[string]*entity.Business
}

func (r *stubBusinessRepo) Create(b *entity.Business) error { r.businesses[b.ID] = b; return nil }
func (r *stubBusinessRepo) GetByID(id string) (*entity.Business, error) {
	return r.businesses[id], nil
}
func (r *stubBusinessRepo) Update(*entity.Business) error { return nil }
func (r *stubBusinessRepo) SetOwner(string, string) error { return nil }
func (r *stubBusinessRepo) ListSummaries() ([]*repository.BusinessSummary, error) {
	return nil, nil
}
func (r *stubBusinessRepo) Delete(string) error { return nil }

type stubAuditRepo struct{}

func (stubAuditRepo) Create(*entity.AuditLog) error { return nil }
func (stubAuditRepo) List(string, int, int) ([]*entity.AuditLog, error) {
	return nil, nil
}
func (stubAuditRepo) DeleteAll() (int64, error) { return 0, nil }

type stubTx struct {
	users      *stubUserRepo
	businesses *stubBusinessRepo
}

func (tx *stubTx) Run(_ context.Context, fn func(
	repository.UserRepository,
	repository.BusinessRepository,
	repository.ProductRepository,
	repository.AuditLogRepository,
) error) error {
	return fn(tx.users, tx.businesses, nil, stubAuditRepo{})
}

func buildRegisterApp() *fiber.App {
	users := &stubUserRepo{users: map[string]*entity.User{}}
	businesses := &stubBusinessRepo{businesses: map[string]*entity.Business{
		"00000000-0000-0000-0000-00000000000b": {ID: "00000000-0000-0000-0000-00000000000b", Name: "Negocio"},
	}}
	uc := auth.NewAuthUseCase(users, businesses, &stubTx{users: users, businesses: businesses}, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	app := fiber.New()
	app.Post("/api/auth/register", apphttp.NewAuthHandler(uc).RegisterViewer)
	return app
}

func postRegister(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Un business_id inexistente en el registro es un error de validación del
// payload: responde 400, nunca 404.
func TestRegisterViewer_NegocioInexistenteResponde400(t *testing.T) {
	app := buildRegisterApp()

	resp := postRegister(t, app, `{"email":"n@example.com","password":"secreta123","business_id":"00000000-0000-0000-0000-0000000000ff"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"business_id inexistente debe reportarse como 400 de validación")
}

func TestRegisterViewer_NegocioExistenteResponde201(t *testing.T) {
	app := buildRegisterApp()

	resp := postRegister(t, app, `{"email":"n@example.com","password":"secreta123","business_id":"00000000-0000-0000-0000-00000000000b"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
