package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// AuditLogRepository puerto de la bitácora append-only. Create se invoca
// dentro de la misma transacción que la mutación; no existe Update.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	// List entradas más recientes primero; action vacío no filtra.
	List(action string, limit, offset int) ([]*entity.AuditLog, error)
	// DeleteAll limpieza masiva administrativa; devuelve filas eliminadas.
	DeleteAll() (int64, error)
}
