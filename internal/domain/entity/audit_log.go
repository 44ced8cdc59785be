package entity

import "time"

// Acciones registradas en la bitácora.
const (
	ActionBusinessOwnerCreated = "business_owner_created"
	ActionUserCreated          = "user_created"
	ActionUserUpdated          = "user_updated"
	ActionUserDeleted          = "user_deleted"
	ActionViewerRegistered     = "viewer_registered"
	ActionProductCreated       = "product_created"
	ActionProductUpdated       = "product_updated"
	ActionProductSubmitted     = "product_submitted"
	ActionProductApproved      = "product_approved"
	ActionProductRejected      = "product_rejected"
	ActionProductDeleted       = "product_deleted"
)

// AuditLog entrada inmutable de la bitácora. ActorID y BusinessID se anulan
// si la entidad referenciada se elimina (SET NULL), para que la historia
// sobreviva al borrado. Solo se borra vía la limpieza masiva administrativa.
type AuditLog struct {
	ID         string
	Action     string
	ActorID    *string
	BusinessID *string
	TargetType string
	TargetID   string
	Metadata   map[string]any
	CreatedAt  time.Time
}

// NewAuditLog construye una entrada lista para persistir dentro de la misma
// transacción que la mutación que la origina.
func NewAuditLog(action string, actorID, businessID *string, targetType, targetID string, metadata map[string]any) *AuditLog {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &AuditLog{
		Action:     action,
		ActorID:    actorID,
		BusinessID: businessID,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   metadata,
	}
}
