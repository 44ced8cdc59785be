package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ViewerRegisterRequest auto-registro público con rol viewer.
// BusinessID es opcional; si viene, debe existir.
type ViewerRegisterRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	FirstName  string  `json:"first_name" validate:"omitempty,max=150"`
	LastName   string  `json:"last_name" validate:"omitempty,max=150"`
	BusinessID *string `json:"business_id" validate:"omitempty,uuid"`
}

// UpdateProfileRequest edición del propio perfil. El cambio de contraseña
// exige la contraseña actual.
type UpdateProfileRequest struct {
	FirstName       Optional[string] `json:"first_name"`
	LastName        Optional[string] `json:"last_name"`
	CurrentPassword string           `json:"current_password"`
	NewPassword     string           `json:"new_password" validate:"omitempty,min=8"`
}
