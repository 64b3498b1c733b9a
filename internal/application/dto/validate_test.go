package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
)

func TestValidate_SignupValido(t *testing.T) {
	in := dto.SignupRequest{
		Email: "ana@acme.co", Password: "secreta123", FullName: "Ana",
		CompanyName: "Acme", CompanyType: "both",
	}
	assert.NoError(t, dto.Validate(in))
}

func TestValidate_NombraCampoJSON(t *testing.T) {
	in := dto.SignupRequest{
		Email: "ana@acme.co", Password: "secreta123", FullName: "Ana",
		CompanyName: "Acme", CompanyType: "retailer",
	}
	err := dto.Validate(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "company_type")
}

func TestValidate_AccionDePermiso(t *testing.T) {
	yes, no := true, false
	assert.NoError(t, dto.Validate(dto.ChangePermissionRequest{ModuleID: "m1", Action: "edit", Value: &yes}))
	assert.NoError(t, dto.Validate(dto.ChangePermissionRequest{ModuleID: "m1", Action: "edit", Value: &no}), "false explícito es válido")
	assert.ErrorIs(t, dto.Validate(dto.ChangePermissionRequest{ModuleID: "m1", Action: "approve", Value: &yes}), domain.ErrInvalidInput)

	err := dto.Validate(dto.ChangePermissionRequest{ModuleID: "m1", Action: "view"})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "sin value no se revoca en silencio")
	assert.Contains(t, err.Error(), "value")
}

func TestValidate_OpcionalesConPuntero(t *testing.T) {
	bad := "no-es-email"
	assert.Error(t, dto.Validate(dto.UpdateCompanyRequest{Email: &bad}))
	assert.NoError(t, dto.Validate(dto.UpdateCompanyRequest{}))
}

func TestDefaultPage(t *testing.T) {
	p := dto.PageRequest{Limit: 500, Offset: -3}
	p.DefaultPage()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
