// Package pdf genera el reporte de permisos de un rol (matriz módulo x acción).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + "MATRIZ DE PERMISOS"  │  Rol + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ROL: descripción + estado (predefinido / editable)         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Módulo | Ver | Crear | Editar | Eliminar            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: totales + leyenda                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGranted = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorDenied  = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.RoleReportGenerator = (*MarotoRoleReportGenerator)(nil)

// MarotoRoleReportGenerator implementa ports.RoleReportGenerator usando Maroto v2.
type MarotoRoleReportGenerator struct{}

// NewMarotoRoleReportGenerator construye el generador.
func NewMarotoRoleReportGenerator() *MarotoRoleReportGenerator { return &MarotoRoleReportGenerator{} }

// GenerateRoleReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoRoleReportGenerator) GenerateRoleReportPDF(_ context.Context, report ports.RoleReport) ([]byte, error) {
	if report.Role == nil {
		return nil, fmt.Errorf("pdf: reporte sin rol")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Matriz de permisos - "+report.Role.Name, true).
		WithAuthor(nonEmpty(report.CompanyName, "Nexus"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(roleRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Rows)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report ports.RoleReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(report.CompanyName, "Nexus"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("MATRIZ DE PERMISOS", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(report.Role.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func roleRow(report ports.RoleReport) core.Row {
	status := "Editable"
	if report.Locked {
		status = "Predefinido (no editable)"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ROL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(report.Role.Description, "Sin descripción"), props.Text{
				Size: 9, Top: 6,
			}),
			text.New("Estado: "+status, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	hr := row.New(8).Add(h("Módulo", 4, align.Left))
	for _, a := range authz.Actions {
		hr.Add(h(actionLabel(a), 2, align.Center))
	}
	return hr
}

func tableRows(rows []ports.RoleReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		name := "—"
		if r.Module != nil {
			name = r.Module.Name
		}
		rw := row.New(7).Add(col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})))
		for _, a := range authz.Actions {
			rw.Add(col.New(2).Add(mark(r.Capabilities.Get(a))))
		}
		result = append(result, rw)
	}
	return result
}

func footerRow(report ports.RoleReport) core.Row {
	granted := 0
	for _, r := range report.Rows {
		for _, a := range authz.Actions {
			if r.Capabilities.Get(a) {
				granted++
			}
		}
	}
	total := len(report.Rows) * len(authz.Actions)
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Permisos concedidos: %d de %d", granted, total), props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		}),
		text.New("Conceder una acción concede las anteriores (Ver < Crear < Editar < Eliminar); revocarla revoca las siguientes.", props.Text{
			Size: 6.5, Top: 6, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func mark(granted bool) core.Component {
	if granted {
		return text.New("Sí", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: colorGranted})
	}
	return text.New("No", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorDenied})
}

func actionLabel(a authz.Action) string {
	switch a {
	case authz.ActionView:
		return "Ver"
	case authz.ActionCreate:
		return "Crear"
	case authz.ActionEdit:
		return "Editar"
	case authz.ActionDelete:
		return "Eliminar"
	}
	return string(a)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
