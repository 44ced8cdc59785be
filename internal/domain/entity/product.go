package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un producto. Transiciones válidas:
// draft → pending_approval → approved | rejected, y rejected → pending_approval
// (reenvío). Una edición sobre approved lo regresa a pending_approval.
const (
	StatusDraft           = "draft"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// Product representa un producto del catálogo de un negocio.
// Image e ImageURL son mutuamente excluyentes: asignar uno limpia el otro.
// RejectionReason solo es no-vacío mientras Status es rejected.
type Product struct {
	ID              string
	BusinessID      string // CASCADE: se elimina con el negocio
	CreatedByID     string // PROTECT: bloquea borrar al autor
	Name            string
	Description     string
	Price           decimal.Decimal // 2 decimales
	Image           string          // referencia de archivo subido
	ImageURL        string
	Status          string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
