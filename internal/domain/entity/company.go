package entity

import "time"

// Tipos de empresa admitidos en el onboarding.
const (
	CompanyTypeManufacturer = "manufacturer"
	CompanyTypeDistributor  = "distributor"
	CompanyTypeBoth         = "both"
)

// Company representa una organización/tenant del sistema (multi-tenant).
// Es dueña de empleados e invitaciones; nunca se elimina en el flujo normal.
type Company struct {
	ID        string
	Name      string
	Type      string // manufacturer, distributor, both
	Email     string
	Phone     string
	Address   string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidCompanyType informa si t es uno de los tipos admitidos.
func IsValidCompanyType(t string) bool {
	switch t {
	case CompanyTypeManufacturer, CompanyTypeDistributor, CompanyTypeBoth:
		return true
	}
	return false
}
