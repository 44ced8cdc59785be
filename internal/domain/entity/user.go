package entity

import "time"

// User representa un usuario del sistema. BusinessID es nil para admins
// (y opcional para viewers); todo otro rol debe pertenecer a un negocio.
type User struct {
	ID           string
	Email        string // único, case-insensitive
	PasswordHash string // bcrypt, nunca plano después de persistir
	FirstName    string
	LastName     string
	Role         string // código del catálogo de roles
	BusinessID   *string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool // escape hatch: satisface HasRole para cualquier código
	DateJoined   time.Time
	UpdatedAt    time.Time
}

// HasRole es el predicado central de autorización: superusuario pasa siempre,
// si no, igualdad estricta del código de rol.
func (u *User) HasRole(code string) bool {
	return u.IsSuperuser || u.Role == code
}

// SameBusiness indica si el usuario pertenece al negocio dado.
func (u *User) SameBusiness(businessID *string) bool {
	if u.BusinessID == nil || businessID == nil {
		return false
	}
	return *u.BusinessID == *businessID
}
