package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/testutil/memstore"
)

// ── Clientes ─────────────────────────────────────────────────────────────────

func TestCustomer_CRUD(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewCustomerUseCase(store.Customers())
	companyID := store.AddCompany("Acme")
	ctx := context.Background()

	c, err := uc.Create(ctx, companyID, dto.CreateCustomerRequest{Name: " Ferretería Sur ", TaxID: "900123456"})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería Sur", c.Name)

	_, err = uc.Create(ctx, companyID, dto.CreateCustomerRequest{Name: "Otro", TaxID: "900123456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.Update(ctx, companyID, c.ID, dto.UpdateCustomerRequest{Phone: ptr("3001234567")})
	require.NoError(t, err)
	assert.Equal(t, "3001234567", updated.Phone)

	list, err := uc.List(ctx, companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.GetByID(ctx, store.AddCompany("Otra"), c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "aislado por empresa")

	require.NoError(t, uc.Delete(ctx, companyID, c.ID))
	_, err = uc.GetByID(ctx, companyID, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUpdate_TaxIDDuplicado(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewCustomerUseCase(store.Customers())
	companyID := store.AddCompany("Acme")
	ctx := context.Background()

	_, err := uc.Create(ctx, companyID, dto.CreateCustomerRequest{Name: "A", TaxID: "1"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, companyID, dto.CreateCustomerRequest{Name: "B", TaxID: "2"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, companyID, b.ID, dto.UpdateCustomerRequest{TaxID: ptr("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ── Productos ────────────────────────────────────────────────────────────────

func TestProduct_CRUD(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewProductUseCase(store.Products())
	companyID := store.AddCompany("Acme")
	ctx := context.Background()

	p, err := uc.Create(ctx, companyID, dto.CreateProductRequest{
		SKU:   "TOR-001",
		Name:  "Tornillo",
		Price: decimal.RequireFromString("1250.50"),
		Cost:  decimal.RequireFromString("800"),
		Stock: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "UND", p.UnitMeasure)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1250.5")))

	_, err = uc.Create(ctx, companyID, dto.CreateProductRequest{SKU: "TOR-001", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	newPrice := decimal.RequireFromString("1300")
	updated, err := uc.Update(ctx, companyID, p.ID, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))

	list, err := uc.List(ctx, companyID, dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, companyID, p.ID))
	_, err = uc.GetByID(ctx, companyID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_MontosNegativos(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewProductUseCase(store.Products())
	companyID := store.AddCompany("Acme")
	ctx := context.Background()

	_, err := uc.Create(ctx, companyID, dto.CreateProductRequest{SKU: "X", Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.Create(ctx, companyID, dto.CreateProductRequest{SKU: "Y", Name: "Y"})
	require.NoError(t, err)
	negative := decimal.NewFromInt(-5)
	_, err = uc.Update(ctx, companyID, p.ID, dto.UpdateProductRequest{Stock: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
