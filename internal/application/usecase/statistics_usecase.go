package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// StatisticsUseCase agregaciones read-only para los paneles admin y de negocio.
type StatisticsUseCase struct {
	statsRepo repository.StatisticsRepository
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(statsRepo repository.StatisticsRepository) *StatisticsUseCase {
	return &StatisticsUseCase{statsRepo: statsRepo}
}

// AdminStatistics métricas globales. Las dos consultas corren en paralelo.
// El ratio aprobados/pendientes es 0 cuando no hay pendientes (guardia
// explícita de división por cero).
func (uc *StatisticsUseCase) AdminStatistics(ctx context.Context) (*dto.AdminStatisticsResponse, error) {
	type globalResult struct {
		counts repository.GlobalCounts
		err    error
	}
	type statusResult struct {
		counts repository.StatusCounts
		err    error
	}
	globalCh := make(chan globalResult, 1)
	statusCh := make(chan statusResult, 1)

	go func() {
		counts, err := uc.statsRepo.GetGlobalCounts(ctx)
		globalCh <- globalResult{counts, err}
	}()
	go func() {
		counts, err := uc.statsRepo.GetStatusCounts(ctx, nil)
		statusCh <- statusResult{counts, err}
	}()

	global := <-globalCh
	status := <-statusCh
	if global.err != nil {
		return nil, fmt.Errorf("statistics: conteos globales: %w", global.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("statistics: conteos por estado: %w", status.err)
	}

	ratio := 0.0
	if status.counts.Pending > 0 {
		ratio = float64(status.counts.Approved) / float64(status.counts.Pending)
	}
	return &dto.AdminStatisticsResponse{
		TotalBusinesses:      global.counts.Businesses,
		TotalUsers:           global.counts.Users,
		TotalProducts:        global.counts.Products,
		ApprovedProducts:     status.counts.Approved,
		PendingProducts:      status.counts.Pending,
		ApprovedPendingRatio: ratio,
	}, nil
}

// BusinessStatistics métricas del negocio del actor. Un admin no tiene
// negocio propio: debe usar el endpoint admin, llamarlo así es un error de
// programación, no de autorización.
func (uc *StatisticsUseCase) BusinessStatistics(ctx context.Context, actor *entity.User) (*dto.BusinessStatisticsResponse, error) {
	if actor.HasRole(entity.RoleAdmin) {
		return nil, fmt.Errorf("statistics: los admin deben usar el endpoint de estadísticas globales")
	}
	if actor.BusinessID == nil {
		return nil, fmt.Errorf("statistics: el actor no pertenece a ningún negocio")
	}
	businessID := *actor.BusinessID

	users, err := uc.statsRepo.CountBusinessUsers(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("statistics: usuarios del negocio: %w", err)
	}
	products, err := uc.statsRepo.CountBusinessProducts(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("statistics: productos del negocio: %w", err)
	}
	status, err := uc.statsRepo.GetStatusCounts(ctx, &businessID)
	if err != nil {
		return nil, fmt.Errorf("statistics: estados del negocio: %w", err)
	}

	return &dto.BusinessStatisticsResponse{
		TotalBusinessUsers: users,
		TotalProducts:      products,
		PendingApprovals:   status.Pending,
		ApprovedProducts:   status.Approved,
		RejectedProducts:   status.Rejected,
	}, nil
}
