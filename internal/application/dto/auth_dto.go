package dto

// SignupRequest onboarding: crea la identidad, la empresa y el empleado administrador.
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=1,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	CompanyType string `json:"company_type" validate:"required,oneof=manufacturer distributor both"`
	Address     string `json:"address" validate:"omitempty,max=300"`
}

// SignupResponse resultado del onboarding (incluye token para entrar directamente).
type SignupResponse struct {
	Token    string           `json:"token"`
	User     UserResponse     `json:"user"`
	Company  CompanyResponse  `json:"company"`
	Employee EmployeeResponse `json:"employee"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse identidad autenticada ({id, email}).
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// MeResponse identidad más el empleado resuelto.
type MeResponse struct {
	User     UserResponse     `json:"user"`
	Employee EmployeeResponse `json:"employee"`
}
