package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

type fakeStatsRepo struct {
	global     repository.GlobalCounts
	allStatus  repository.StatusCounts
	byBusiness map[string]repository.StatusCounts
	users      map[string]int
	products   map[string]int
}

func (r *fakeStatsRepo) GetGlobalCounts(context.Context) (repository.GlobalCounts, error) {
	return r.global, nil
}

func (r *fakeStatsRepo) GetStatusCounts(_ context.Context, businessID *string) (repository.StatusCounts, error) {
	if businessID == nil {
		return r.allStatus, nil
	}
	return r.byBusiness[*businessID], nil
}

func (r *fakeStatsRepo) CountBusinessUsers(_ context.Context, businessID string) (int, error) {
	return r.users[businessID], nil
}

func (r *fakeStatsRepo) CountBusinessProducts(_ context.Context, businessID string) (int, error) {
	return r.products[businessID], nil
}

func TestAdminStatistics_CalculaRatio(t *testing.T) {
	uc := usecase.NewStatisticsUseCase(&fakeStatsRepo{
		global:    repository.GlobalCounts{Businesses: 3, Users: 12, Products: 40},
		allStatus: repository.StatusCounts{Approved: 30, Pending: 6},
	})

	out, err := uc.AdminStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalBusinesses)
	assert.Equal(t, 12, out.TotalUsers)
	assert.Equal(t, 40, out.TotalProducts)
	assert.Equal(t, 30, out.ApprovedProducts)
	assert.Equal(t, 6, out.PendingProducts)
	assert.InDelta(t, 5.0, out.ApprovedPendingRatio, 0.001)
}

func TestAdminStatistics_RatioCeroSinPendientes(t *testing.T) {
	uc := usecase.NewStatisticsUseCase(&fakeStatsRepo{
		allStatus: repository.StatusCounts{Approved: 10, Pending: 0},
	})

	out, err := uc.AdminStatistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.ApprovedPendingRatio,
		"sin pendientes el ratio es 0, nunca división por cero")
}

func TestBusinessStatistics_DelNegocioDelActor(t *testing.T) {
	uc := usecase.NewStatisticsUseCase(&fakeStatsRepo{
		byBusiness: map[string]repository.StatusCounts{
			bizA: {Pending: 2, Approved: 5, Rejected: 1},
		},
		users:    map[string]int{bizA: 4},
		products: map[string]int{bizA: 8},
	})

	out, err := uc.BusinessStatistics(context.Background(), ownerActor(bizA))
	require.NoError(t, err)
	assert.Equal(t, 4, out.TotalBusinessUsers)
	assert.Equal(t, 8, out.TotalProducts)
	assert.Equal(t, 2, out.PendingApprovals)
	assert.Equal(t, 5, out.ApprovedProducts)
	assert.Equal(t, 1, out.RejectedProducts)
}

func TestBusinessStatistics_AdminNoTieneNegocio(t *testing.T) {
	uc := usecase.NewStatisticsUseCase(&fakeStatsRepo{})

	_, err := uc.BusinessStatistics(context.Background(), adminActor())
	assert.Error(t, err, "un admin debe usar el endpoint de estadísticas globales")

	_, err = uc.BusinessStatistics(context.Background(), &entity.User{ID: "x", Role: entity.RoleViewer})
	assert.Error(t, err, "un actor sin negocio no tiene estadísticas de negocio")
}
