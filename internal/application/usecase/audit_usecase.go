package usecase

import (
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// AuditUseCase lectura y limpieza de la bitácora (solo rutas admin).
// Las escrituras no pasan por aquí: cada mutación registra su evento dentro
// de su propia transacción vía el AuditLogRepository atado a la tx.
type AuditUseCase struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(auditRepo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// List entradas más recientes primero, opcionalmente filtradas por acción.
func (uc *AuditUseCase) List(action string, limit, offset int) ([]*dto.AuditLogResponse, error) {
	logs, err := uc.auditRepo.List(action, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, &dto.AuditLogResponse{
			ID:         l.ID,
			Action:     l.Action,
			ActorID:    l.ActorID,
			BusinessID: l.BusinessID,
			TargetType: l.TargetType,
			TargetID:   l.TargetID,
			Metadata:   l.Metadata,
			CreatedAt:  l.CreatedAt,
		})
	}
	return out, nil
}

// Clear limpieza masiva; devuelve cuántas entradas se eliminaron.
func (uc *AuditUseCase) Clear() (int64, error) {
	return uc.auditRepo.DeleteAll()
}
