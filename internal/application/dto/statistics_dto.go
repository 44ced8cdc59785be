package dto

import "time"

// AdminStatisticsResponse métricas globales del sistema.
// ApprovedPendingRatio es 0 cuando no hay productos pendientes.
type AdminStatisticsResponse struct {
	TotalBusinesses      int     `json:"total_businesses"`
	TotalUsers           int     `json:"total_users"`
	TotalProducts        int     `json:"total_products"`
	ApprovedProducts     int     `json:"approved_products"`
	PendingProducts      int     `json:"pending_products"`
	ApprovedPendingRatio float64 `json:"approved_pending_ratio"`
}

// BusinessStatisticsResponse métricas del negocio del solicitante.
type BusinessStatisticsResponse struct {
	TotalBusinessUsers int `json:"total_business_users"`
	TotalProducts      int `json:"total_products"`
	PendingApprovals   int `json:"pending_approvals"`
	ApprovedProducts   int `json:"approved_products"`
	RejectedProducts   int `json:"rejected_products"`
}

// AuditLogResponse entrada de bitácora para el panel admin.
type AuditLogResponse struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	ActorID    *string        `json:"actor_id"`
	BusinessID *string        `json:"business_id"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
}
