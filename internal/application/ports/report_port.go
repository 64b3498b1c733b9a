package ports

import (
	"context"
	"time"

	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// RoleReportRow una fila de la matriz: módulo y sus capacidades para el rol.
type RoleReportRow struct {
	Module       *entity.Module
	Capabilities authz.Capabilities
}

// RoleReport datos de entrada del reporte de permisos de un rol.
type RoleReport struct {
	Role        *entity.Role
	Locked      bool
	CompanyName string
	Rows        []RoleReportRow
	GeneratedAt time.Time
}

// RoleReportGenerator genera la representación PDF de un RoleReport.
type RoleReportGenerator interface {
	GenerateRoleReportPDF(ctx context.Context, report RoleReport) ([]byte, error)
}
