package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto de uso común.
const (
	GastoProveedores = "proveedores"
	GastoServicios   = "servicios"
	GastoImpuestos   = "impuestos"
	GastoSueldos     = "sueldos"
	GastoOtros       = "otros"
)

// Gasto representa un egreso de la empresa.
type Gasto struct {
	ID          string
	EmpresaID   string
	Categoria   string
	Descripcion string
	Proveedor   string
	Importe     decimal.Decimal
	Fecha       time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
