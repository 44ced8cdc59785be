package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción: o todas las escrituras
// (entidades + bitácora) confirman, o ninguna. Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		businesses repository.BusinessRepository,
		products repository.ProductRepository,
		audit repository.AuditLogRepository,
	) error) error
}

// ProductCache cache best-effort del listado público de productos aprobados.
// Un miss (o cualquier fallo del backend) simplemente fuerza la reconstrucción;
// nunca es fuente de verdad.
type ProductCache interface {
	GetApprovedIDs(ctx context.Context) ([]string, bool)
	SetApprovedIDs(ctx context.Context, ids []string)
	Invalidate(ctx context.Context)
}
