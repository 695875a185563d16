package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGastoRequest alta de un gasto.
type CreateGastoRequest struct {
	Categoria   string          `json:"categoria" validate:"required,oneof=proveedores servicios impuestos sueldos otros"`
	Descripcion string          `json:"descripcion" validate:"required,min=2,max=300"`
	Proveedor   string          `json:"proveedor"`
	Importe     decimal.Decimal `json:"importe"`
	Fecha       *time.Time      `json:"fecha"`
}

// GastoResponse representación pública de un gasto.
type GastoResponse struct {
	ID          string          `json:"id"`
	EmpresaID   string          `json:"empresa_id"`
	Categoria   string          `json:"categoria"`
	Descripcion string          `json:"descripcion"`
	Proveedor   string          `json:"proveedor,omitempty"`
	Importe     decimal.Decimal `json:"importe"`
	Fecha       time.Time       `json:"fecha"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ResumenGastosResponse totales del período por categoría.
type ResumenGastosResponse struct {
	Desde      time.Time            `json:"desde"`
	Hasta      time.Time            `json:"hasta"`
	Total      decimal.Decimal      `json:"total"`
	Categorias []CategoriaGastoItem `json:"categorias"`
}

// CategoriaGastoItem total de una categoría dentro del resumen.
type CategoriaGastoItem struct {
	Categoria string          `json:"categoria"`
	Total     decimal.Decimal `json:"total"`
}
