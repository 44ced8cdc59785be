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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, role, business_id, is_active, is_staff, is_superuser, date_joined, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.BusinessID, user.IsActive, user.IsStaff, user.IsSuperuser,
		user.DateJoined, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user by id")
}

// GetByEmail obtiene un usuario por email (comparación case-insensitive).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get user by email")
}

// EmailTaken verifica unicidad case-insensitive excluyendo un ID.
func (r *UserRepo) EmailTaken(email, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2)`
	var taken bool
	if err := r.q.QueryRow(context.Background(), query, email, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check email taken: %w", err)
	}
	return taken, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
			role = $6, business_id = $7, is_active = $8, is_staff = $9, is_superuser = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.BusinessID, user.IsActive, user.IsStaff, user.IsSuperuser, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List usuarios con paginación; businessID nil lista todos (admin).
func (r *UserRepo) List(businessID *string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if businessID != nil {
		query += ` WHERE business_id = $1 ORDER BY email LIMIT $2 OFFSET $3`
		args = append(args, *businessID, limit, offset)
	} else {
		query += ` ORDER BY email LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.BusinessID, &u.IsActive, &u.IsStaff, &u.IsSuperuser,
		&u.DateJoined, &u.UpdatedAt,
	)
}
