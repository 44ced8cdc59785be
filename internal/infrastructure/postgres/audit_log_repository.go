package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora append-only sobre PostgreSQL (usable con pool o tx).
// Las entradas nunca se actualizan; solo Create, List y la limpieza masiva.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de la bitácora. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada; asigna ID y created_at si vienen vacíos.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	metadata, err := json.Marshal(log.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}
	query := `
		INSERT INTO audit_logs (id, action, actor_id, business_id, target_type, target_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		log.ID, log.Action, log.ActorID, log.BusinessID,
		log.TargetType, log.TargetID, metadata, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List entradas más recientes primero; action vacío no filtra.
func (r *AuditLogRepo) List(action string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, action, actor_id, business_id, target_type, target_id, metadata, created_at
		FROM audit_logs`
	args := []any{}
	if action != "" {
		query += ` WHERE action = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, action, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var metadata []byte
		if err := rows.Scan(
			&l.ID, &l.Action, &l.ActorID, &l.BusinessID,
			&l.TargetType, &l.TargetID, &metadata, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &l.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteAll limpieza masiva administrativa.
func (r *AuditLogRepo) DeleteAll() (int64, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM audit_logs`)
	if err != nil {
		return 0, fmt.Errorf("clear audit logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
