package entity

import "time"

// Business representa un negocio/tenant. OwnerID puede ser nil transitoriamente
// durante la creación (el owner se asigna después de crear el usuario) y se
// anula si el owner es eliminado (SET NULL en DB).
type Business struct {
	ID        string
	Name      string // único
	OwnerID   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
