package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticuloRequest alta de artículo de inventario.
type CreateArticuloRequest struct {
	Codigo         string          `json:"codigo" validate:"required,min=1,max=50"`
	Descripcion    string          `json:"descripcion" validate:"required,min=2,max=300"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	AlicuotaIVA    decimal.Decimal `json:"alicuota_iva"` // 21, 10.5, 27, 0
	StockInicial   decimal.Decimal `json:"stock_inicial"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
}

// UpdateArticuloRequest modificación de artículo (el stock se mueve con ajustes).
type UpdateArticuloRequest struct {
	Codigo         string          `json:"codigo" validate:"required,min=1,max=50"`
	Descripcion    string          `json:"descripcion" validate:"required,min=2,max=300"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	AlicuotaIVA    decimal.Decimal `json:"alicuota_iva"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	Activo         *bool           `json:"activo"`
}

// AjusteStockRequest ajuste manual de stock (recepción de mercadería, merma).
type AjusteStockRequest struct {
	Delta  decimal.Decimal `json:"delta" validate:"required"`
	Motivo string          `json:"motivo"`
}

// ArticuloResponse representación pública de un artículo.
type ArticuloResponse struct {
	ID             string          `json:"id"`
	EmpresaID      string          `json:"empresa_id"`
	Codigo         string          `json:"codigo"`
	Descripcion    string          `json:"descripcion"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	AlicuotaIVA    decimal.Decimal `json:"alicuota_iva"`
	Stock          decimal.Decimal `json:"stock"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	BajoMinimo     bool            `json:"bajo_minimo"`
	Activo         bool            `json:"activo"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
