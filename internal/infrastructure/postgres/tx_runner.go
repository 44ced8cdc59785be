package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.TxRunner.
var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Cada mutación de servicio (entidad + bitácora) pasa por aquí: o confirma
// todo, o revierte todo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	businesses repository.BusinessRepository,
	products repository.ProductRepository,
	audit repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	businessRepo := NewBusinessRepository(tx)
	productRepo := NewProductRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(userRepo, businessRepo, productRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
