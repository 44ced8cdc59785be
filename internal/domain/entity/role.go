package entity

// Códigos de rol válidos. La tabla roles es un catálogo sembrado por migración;
// el código es la clave estable que viaja en el JWT y en las reglas de negocio.
const (
	RoleAdmin         = "admin"
	RoleBusinessOwner = "business_owner"
	RoleEditor        = "editor"
	RoleApprover      = "approver"
	RoleViewer        = "viewer"
)

// Role entrada del catálogo de roles (inmutable en runtime).
type Role struct {
	Code        string
	Name        string
	Description string
}

// RoleCatalog catálogo completo, en el mismo orden que la migración de seed.
var RoleCatalog = []Role{
	{Code: RoleAdmin, Name: "Admin", Description: "Administrador del sistema, acceso a todos los tenants"},
	{Code: RoleBusinessOwner, Name: "Business Owner", Description: "Dueño de un negocio, administra sus usuarios"},
	{Code: RoleEditor, Name: "Editor", Description: "Crea y edita productos de su negocio"},
	{Code: RoleApprover, Name: "Approver", Description: "Aprueba o rechaza productos pendientes"},
	{Code: RoleViewer, Name: "Viewer", Description: "Solo lectura de productos aprobados"},
}

// IsValidRole verifica que el código exista en el catálogo.
func IsValidRole(code string) bool {
	for _, r := range RoleCatalog {
		if r.Code == code {
			return true
		}
	}
	return false
}

// Conjuntos de roles para las reglas de autorización.
var (
	// OwnerManagedRoles roles que un business_owner puede crear/asignar en su negocio.
	OwnerManagedRoles = map[string]bool{RoleEditor: true, RoleApprover: true}
	// ProductEditRoles roles que pueden crear/editar/enviar productos.
	ProductEditRoles = map[string]bool{RoleAdmin: true, RoleBusinessOwner: true, RoleEditor: true}
	// ProductApproveRoles roles que pueden aprobar/rechazar productos.
	ProductApproveRoles = map[string]bool{RoleAdmin: true, RoleApprover: true}
)
