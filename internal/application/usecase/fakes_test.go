package usecase_test

import (
	"context"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. El runner de transacciones
// toma un snapshot antes de fn y lo restaura si fn falla, para poder verificar
// la atomicidad (ningún estado parcial sobrevive a un error).
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailTaken(email, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(businessID *string, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if businessID != nil && (u.BusinessID == nil || *u.BusinessID != *businessID) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeBusinessRepo struct {
	mu         sync.Mutex
	businesses map[string]*entity.Business
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{businesses: map[string]*entity.Business{}}
}

func (r *fakeBusinessRepo) Create(business *entity.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.businesses {
		if b.Name == business.Name {
			return domain.ErrBusinessNameTaken
		}
	}
	cp := *business
	r.businesses[business.ID] = &cp
	return nil
}

func (r *fakeBusinessRepo) GetByID(id string) (*entity.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.businesses[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBusinessRepo) Update(business *entity.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *business
	r.businesses[business.ID] = &cp
	return nil
}

func (r *fakeBusinessRepo) SetOwner(businessID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.businesses[businessID]; ok {
		b.OwnerID = &ownerID
	}
	return nil
}

func (r *fakeBusinessRepo) ListSummaries() ([]*repository.BusinessSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repository.BusinessSummary
	for _, b := range r.businesses {
		out = append(out, &repository.BusinessSummary{Business: *b})
	}
	return out, nil
}

func (r *fakeBusinessRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.businesses, id)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	order    []string // orden de inserción, más reciente al final
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	r.order = append(r.order, product.ID)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, id := range r.order {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		if filter.BusinessID != nil && p.BusinessID != *filter.BusinessID {
			continue
		}
		if filter.CreatedByID != nil && p.CreatedByID != *filter.CreatedByID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) ApprovedIDs() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, id := range r.order {
		if p, ok := r.products[id]; ok && p.Status == entity.StatusApproved {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeProductRepo) GetApprovedByIDs(ids []string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.Status == entity.StatusApproved {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, log)
	return nil
}

func (r *fakeAuditRepo) List(action string, limit, offset int) ([]*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AuditLog
	for _, e := range r.entries {
		if action != "" && e.Action != action {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeAuditRepo) DeleteAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.entries))
	r.entries = nil
	return n, nil
}

// last devuelve la última entrada registrada, o nil.
func (r *fakeAuditRepo) last() *entity.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

func (r *fakeAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// fakeTxRunner ejecuta fn sobre los fakes compartidos con semántica de
// rollback: si fn devuelve error, se restaura el estado previo completo.
type fakeTxRunner struct {
	users      *fakeUserRepo
	businesses *fakeBusinessRepo
	products   *fakeProductRepo
	audit      *fakeAuditRepo
}

type txSnapshot struct {
	users      map[string]*entity.User
	businesses map[string]*entity.Business
	products   map[string]*entity.Product
	order      []string
	audit      []*entity.AuditLog
}

func (tx *fakeTxRunner) snapshot() txSnapshot {
	s := txSnapshot{
		users:      make(map[string]*entity.User, len(tx.users.users)),
		businesses: make(map[string]*entity.Business, len(tx.businesses.businesses)),
		products:   make(map[string]*entity.Product, len(tx.products.products)),
		order:      append([]string(nil), tx.products.order...),
		audit:      append([]*entity.AuditLog(nil), tx.audit.entries...),
	}
	for id, u := range tx.users.users {
		cp := *u
		s.users[id] = &cp
	}
	for id, b := range tx.businesses.businesses {
		cp := *b
		s.businesses[id] = &cp
	}
	for id, p := range tx.products.products {
		cp := *p
		s.products[id] = &cp
	}
	return s
}

func (tx *fakeTxRunner) restore(s txSnapshot) {
	tx.users.users = s.users
	tx.businesses.businesses = s.businesses
	tx.products.products = s.products
	tx.products.order = s.order
	tx.audit.entries = s.audit
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	users repository.UserRepository,
	businesses repository.BusinessRepository,
	products repository.ProductRepository,
	audit repository.AuditLogRepository,
) error) error {
	before := tx.snapshot()
	if err := fn(tx.users, tx.businesses, tx.products, tx.audit); err != nil {
		tx.restore(before)
		return err
	}
	return nil
}

type fakeCache struct {
	mu            sync.Mutex
	ids           []string
	populated     bool
	invalidations int
	sets          int
}

func (c *fakeCache) GetApprovedIDs(context.Context) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.populated {
		return nil, false
	}
	return c.ids, true
}

func (c *fakeCache) SetApprovedIDs(_ context.Context, ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = ids
	c.populated = true
	c.sets++
}

func (c *fakeCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = nil
	c.populated = false
	c.invalidations++
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture compartida
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	users      *fakeUserRepo
	businesses *fakeBusinessRepo
	products   *fakeProductRepo
	audit      *fakeAuditRepo
	cache      *fakeCache

	userUC    *usecase.UserUseCase
	productUC *usecase.ProductUseCase
}

func newFixture() *fixture {
	f := &fixture{
		users:      newFakeUserRepo(),
		businesses: newFakeBusinessRepo(),
		products:   newFakeProductRepo(),
		audit:      &fakeAuditRepo{},
		cache:      &fakeCache{},
	}
	tx := &fakeTxRunner{users: f.users, businesses: f.businesses, products: f.products, audit: f.audit}
	f.userUC = usecase.NewUserUseCase(f.users, f.businesses, tx)
	f.productUC = usecase.NewProductUseCase(f.products, f.businesses, tx, f.cache)
	return f
}

func strPtr(s string) *string { return &s }

func adminActor() *entity.User {
	return &entity.User{ID: "admin-1", Role: entity.RoleAdmin, IsActive: true}
}

func ownerActor(businessID string) *entity.User {
	return &entity.User{ID: "owner-1", Role: entity.RoleBusinessOwner, BusinessID: &businessID, IsActive: true}
}

func editorActor(businessID string) *entity.User {
	return &entity.User{ID: "editor-1", Role: entity.RoleEditor, BusinessID: &businessID, IsActive: true}
}

func approverActor(businessID string) *entity.User {
	return &entity.User{ID: "approver-1", Role: entity.RoleApprover, BusinessID: &businessID, IsActive: true}
}

func viewerActor(businessID string) *entity.User {
	return &entity.User{ID: "viewer-1", Role: entity.RoleViewer, BusinessID: &businessID, IsActive: true}
}

// seedBusiness registra un negocio directamente en el fake.
func (f *fixture) seedBusiness(id, name string) {
	_ = f.businesses.Create(&entity.Business{ID: id, Name: name})
}

// seedProduct registra un producto directamente en el fake.
func (f *fixture) seedProduct(p *entity.Product) {
	_ = f.products.Create(p)
}
