package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/pdf"
)

func TestGenerateRoleReportPDF(t *testing.T) {
	g := pdf.NewMarotoRoleReportGenerator()
	report := ports.RoleReport{
		Role:        &entity.Role{ID: "r1", Name: "Bodega Norte", Description: "Operarios"},
		CompanyName: "Acme",
		GeneratedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		Rows: []ports.RoleReportRow{
			{Module: &entity.Module{ID: "m1", Name: "inventory"}, Capabilities: authz.Capabilities{View: true, Create: true}},
			{Module: &entity.Module{ID: "m2", Name: "sales"}},
		},
	}

	out, err := g.GenerateRoleReportPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateRoleReportPDF_SinRol(t *testing.T) {
	_, err := pdf.NewMarotoRoleReportGenerator().GenerateRoleReportPDF(context.Background(), ports.RoleReport{})
	assert.Error(t, err)
}
