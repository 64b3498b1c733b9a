package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario de la empresa.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal
	UnitMeasure string
	Stock       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
