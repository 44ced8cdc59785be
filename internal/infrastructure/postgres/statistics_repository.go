package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.StatisticsRepository = (*StatisticsRepo)(nil)

// StatisticsRepo consultas read-only para los paneles admin y de negocio.
type StatisticsRepo struct {
	pool *pgxpool.Pool
}

// NewStatisticsRepository construye el adaptador de estadísticas.
func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepo {
	return &StatisticsRepo{pool: pool}
}

// GetGlobalCounts totales de negocios, usuarios y productos en una sola consulta.
func (r *StatisticsRepo) GetGlobalCounts(ctx context.Context) (repository.GlobalCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM businesses),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products)`
	var c repository.GlobalCounts
	if err := r.pool.QueryRow(ctx, query).Scan(&c.Businesses, &c.Users, &c.Products); err != nil {
		return c, fmt.Errorf("statistics.GetGlobalCounts: %w", err)
	}
	return c, nil
}

// GetStatusCounts productos por estado; businessID nil agrega sobre todos los tenants.
func (r *StatisticsRepo) GetStatusCounts(ctx context.Context, businessID *string) (repository.StatusCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3)
		FROM products`
	args := []any{entity.StatusPendingApproval, entity.StatusApproved, entity.StatusRejected}
	if businessID != nil {
		query += ` WHERE business_id = $4`
		args = append(args, *businessID)
	}
	var c repository.StatusCounts
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.Pending, &c.Approved, &c.Rejected); err != nil {
		return c, fmt.Errorf("statistics.GetStatusCounts: %w", err)
	}
	return c, nil
}

// CountBusinessUsers usuarios del negocio.
func (r *StatisticsRepo) CountBusinessUsers(ctx context.Context, businessID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE business_id = $1`, businessID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("statistics.CountBusinessUsers: %w", err)
	}
	return n, nil
}

// CountBusinessProducts productos del negocio.
func (r *StatisticsRepo) CountBusinessProducts(ctx context.Context, businessID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE business_id = $1`, businessID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("statistics.CountBusinessProducts: %w", err)
	}
	return n, nil
}
