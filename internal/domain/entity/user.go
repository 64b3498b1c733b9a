package entity

import "time"

// User es la identidad autenticable (proveedor de identidad). No conoce empresas ni roles:
// la relación con el tenant vive en Employee.UserID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
