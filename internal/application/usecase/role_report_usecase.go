package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

// RoleReportUseCase genera el PDF con la matriz de permisos de un rol sobre todos los módulos.
type RoleReportUseCase struct {
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	modules     repository.ModuleRepository
	companies   repository.CompanyRepository
	generator   ports.RoleReportGenerator
	now         func() time.Time
}

// NewRoleReportUseCase construye el caso de uso inyectando sus dependencias.
func NewRoleReportUseCase(
	roles repository.RoleRepository,
	permissions repository.PermissionRepository,
	modules repository.ModuleRepository,
	companies repository.CompanyRepository,
	generator ports.RoleReportGenerator,
) *RoleReportUseCase {
	return &RoleReportUseCase{
		roles:       roles,
		permissions: permissions,
		modules:     modules,
		companies:   companies,
		generator:   generator,
		now:         time.Now,
	}
}

// Download devuelve (pdfBytes, filename). Los módulos sin fila aparecen sin permisos.
func (uc *RoleReportUseCase) Download(ctx context.Context, companyID, roleID string) ([]byte, string, error) {
	// ── 1. Rol y filas ────────────────────────────────────────────────────────
	role, err := uc.roles.GetByID(ctx, roleID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener rol: %w", err)
	}
	if role == nil {
		return nil, "", domain.ErrNotFound
	}
	rows, err := uc.permissions.ListByRole(ctx, roleID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: permisos: %w", err)
	}
	grid := authz.GridFromPermissions(rows)

	// ── 2. Catálogo de módulos ────────────────────────────────────────────────
	modules, err := uc.modules.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: módulos: %w", err)
	}
	report := ports.RoleReport{
		Role:        role,
		Locked:      authz.IsLocked(role),
		GeneratedAt: uc.now(),
		Rows:        make([]ports.RoleReportRow, 0, len(modules)),
	}
	for _, m := range modules {
		report.Rows = append(report.Rows, ports.RoleReportRow{Module: m, Capabilities: grid[m.ID]})
	}

	// ── 3. Empresa (solo encabezado) ──────────────────────────────────────────
	if company, err := uc.companies.GetByID(ctx, companyID); err == nil && company != nil {
		report.CompanyName = company.Name
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdf, err := uc.generator.GenerateRoleReportPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdf, "permisos_" + slug(role.Name) + ".pdf", nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}
