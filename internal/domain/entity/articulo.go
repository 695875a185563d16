package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Articulo representa un artículo del inventario.
type Articulo struct {
	ID             string
	EmpresaID      string
	Codigo         string // SKU, único por empresa
	Descripcion    string
	PrecioUnitario decimal.Decimal // precio neto (sin IVA)
	AlicuotaIVA    decimal.Decimal // porcentaje: 21, 10.5, 27, 0
	Stock          decimal.Decimal
	StockMinimo    decimal.Decimal
	Activo         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
