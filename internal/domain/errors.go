package domain

import "errors"

// Errores de dominio (sin dependencias externas). El mapeo a HTTP vive en
// internal/interfaces/http; los use cases solo devuelven estos sentinelas.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountSuspended   = errors.New("cuenta suspendida")
	ErrForbidden          = errors.New("acceso denegado")

	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrBusinessNameTaken  = errors.New("ya existe un negocio con ese nombre")

	// Validaciones de negocio de usuarios.
	ErrBusinessRequired   = errors.New("los usuarios no-admin deben pertenecer a un negocio")
	ErrBusinessNotFound   = errors.New("el negocio indicado no existe")
	ErrOwnerEndpoint      = errors.New("usar el endpoint de creación de business owner para cuentas owner")
	ErrAdminUserProtected = errors.New("las cuentas admin no pueden eliminarse por esta vía")
	ErrWrongPassword      = errors.New("la contraseña actual es incorrecta")
	ErrBusinessHasUsers   = errors.New("el negocio tiene usuarios vinculados; reasignarlos o eliminarlos primero")

	// Validaciones de la máquina de estados de productos.
	ErrPendingEditLocked = errors.New("un editor no puede modificar productos pendientes de aprobación")
	ErrNotSubmittable    = errors.New("solo productos en draft o rejected pueden enviarse a aprobación")
	ErrNotPending        = errors.New("solo productos pendientes pueden aprobarse o rechazarse")
	ErrReasonRequired    = errors.New("el motivo de rechazo es obligatorio")
)
