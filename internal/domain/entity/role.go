package entity

import "time"

// Role es dato de referencia compartido: el nombre es único en todo el directorio,
// no por empresa (ver DESIGN.md, pregunta abierta sobre aislamiento de roles).
type Role struct {
	ID           string
	Name         string
	Description  string
	IsPredefined bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
