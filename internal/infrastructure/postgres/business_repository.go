package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL (usable con pool o tx).
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de persistencia para negocios. Pasar pool o tx (Querier).
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persiste un nuevo negocio (owner se asigna después con SetOwner).
func (r *BusinessRepo) Create(business *entity.Business) error {
	query := `
		INSERT INTO businesses (id, name, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		business.ID, business.Name, business.OwnerID, business.CreatedAt, business.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBusinessNameTaken
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(id string) (*entity.Business, error) {
	query := `SELECT id, name, owner_id, created_at, updated_at FROM businesses WHERE id = $1`
	var b entity.Business
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// Update actualiza un negocio.
func (r *BusinessRepo) Update(business *entity.Business) error {
	query := `UPDATE businesses SET name = $2, owner_id = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		business.ID, business.Name, business.OwnerID, business.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBusinessNameTaken
		}
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// SetOwner asigna el owner (back-fill durante la creación del negocio+owner).
func (r *BusinessRepo) SetOwner(businessID, ownerID string) error {
	query := `UPDATE businesses SET owner_id = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, businessID, ownerID); err != nil {
		return fmt.Errorf("set business owner: %w", err)
	}
	return nil
}

// ListSummaries listado admin ordenado por nombre con totales de usuarios/productos.
func (r *BusinessRepo) ListSummaries() ([]*repository.BusinessSummary, error) {
	query := `
		SELECT b.id, b.name, b.owner_id, b.created_at, b.updated_at,
		       o.email,
		       COUNT(DISTINCT u.id) AS total_users,
		       COUNT(DISTINCT p.id) AS total_products
		FROM businesses b
		LEFT JOIN users    o ON o.id = b.owner_id
		LEFT JOIN users    u ON u.business_id = b.id
		LEFT JOIN products p ON p.business_id = b.id
		GROUP BY b.id, b.name, b.owner_id, b.created_at, b.updated_at, o.email
		ORDER BY b.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()
	var list []*repository.BusinessSummary
	for rows.Next() {
		var s repository.BusinessSummary
		if err := rows.Scan(
			&s.Business.ID, &s.Business.Name, &s.Business.OwnerID,
			&s.Business.CreatedAt, &s.Business.UpdatedAt,
			&s.OwnerEmail, &s.TotalUsers, &s.TotalProducts,
		); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un negocio. Los productos caen en cascada (FK); usuarios
// vinculados lo bloquean (FK RESTRICT) y se reporta como validación.
func (r *BusinessRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBusinessHasUsers
		}
		return fmt.Errorf("delete business: %w", err)
	}
	return nil
}
