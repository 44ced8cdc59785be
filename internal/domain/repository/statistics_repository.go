package repository

import "context"

// GlobalCounts totales del sistema para el panel admin.
type GlobalCounts struct {
	Businesses int
	Users      int
	Products   int
}

// StatusCounts productos por estado de aprobación.
type StatusCounts struct {
	Pending  int
	Approved int
	Rejected int
}

// StatisticsRepository consultas de solo lectura para los paneles.
type StatisticsRepository interface {
	GetGlobalCounts(ctx context.Context) (GlobalCounts, error)
	// GetStatusCounts: businessID nil cuenta sobre todos los tenants.
	GetStatusCounts(ctx context.Context, businessID *string) (StatusCounts, error)
	CountBusinessUsers(ctx context.Context, businessID string) (int, error)
	CountBusinessProducts(ctx context.Context, businessID string) (int, error)
}
