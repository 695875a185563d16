package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemComprobante línea de la venta. Si PrecioUnitario es cero se toma el
// precio de lista del artículo.
type ItemComprobante struct {
	ArticuloID     string          `json:"articulo_id" validate:"required,uuid4"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateComprobanteRequest alta de una venta. El comprobante nace en BORRADOR;
// la numeración y el CAE llegan al facturar contra AFIP.
type CreateComprobanteRequest struct {
	ClienteID string            `json:"cliente_id" validate:"required,uuid4"`
	Tipo      int               `json:"tipo" validate:"required"`
	Concepto  int               `json:"concepto" validate:"required,oneof=1 2 3"`
	Items     []ItemComprobante `json:"items" validate:"required,min=1,dive"`
	// Plan de cuotas: 0 o 1 = contado. Con N>1 se generan N cuotas mensuales
	// iguales a partir de PrimerVencimiento.
	Cuotas            int        `json:"cuotas" validate:"omitempty,min=0,max=24"`
	PrimerVencimiento *time.Time `json:"primer_vencimiento"`
	// Moneda: vacío = pesos. MonCotiz obligatoria para moneda extranjera.
	MonId    string          `json:"mon_id"`
	MonCotiz decimal.Decimal `json:"mon_cotiz"`
	// Comprobante original, obligatorio para notas de crédito/débito.
	ComprobanteAsociadoID string `json:"comprobante_asociado_id" validate:"omitempty,uuid4"`
	// Fechas de servicio (concepto 2 y 3), formato AAAAMMDD.
	FchServDesde string `json:"fch_serv_desde" validate:"omitempty,len=8,numeric"`
	FchServHasta string `json:"fch_serv_hasta" validate:"omitempty,len=8,numeric"`
	FchVtoPago   string `json:"fch_vto_pago" validate:"omitempty,len=8,numeric"`
}

// ComprobanteDetalleResponse línea del comprobante.
type ComprobanteDetalleResponse struct {
	ID             string          `json:"id"`
	ArticuloID     string          `json:"articulo_id,omitempty"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	AlicuotaIVA    decimal.Decimal `json:"alicuota_iva"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ImporteIVA     decimal.Decimal `json:"importe_iva"`
}

// CuotaResponse cuota del plan de pagos.
type CuotaResponse struct {
	ID          string          `json:"id"`
	Numero      int             `json:"numero"`
	Importe     decimal.Decimal `json:"importe"`
	Vencimiento time.Time       `json:"vencimiento"`
	Estado      string          `json:"estado"`
	FechaPago   *time.Time      `json:"fecha_pago,omitempty"`
	MedioPago   string          `json:"medio_pago,omitempty"`
}

// PagarCuotaRequest registra el pago de una cuota.
type PagarCuotaRequest struct {
	MedioPago string `json:"medio_pago" validate:"required,oneof=efectivo transferencia tarjeta"`
}

// ComprobanteResponse cabecera del comprobante con su estado AFIP.
type ComprobanteResponse struct {
	ID                string                       `json:"id"`
	EmpresaID         string                       `json:"empresa_id"`
	ClienteID         string                       `json:"cliente_id"`
	ClienteNombre     string                       `json:"cliente_nombre,omitempty"`
	Tipo              int                          `json:"tipo"`
	PuntoVenta        int                          `json:"punto_venta"`
	Numero            int64                        `json:"numero,omitempty"`
	NumeroCompleto    string                       `json:"numero_completo,omitempty"`
	Concepto          int                          `json:"concepto"`
	Fecha             time.Time                    `json:"fecha"`
	ImpNeto           decimal.Decimal              `json:"imp_neto"`
	ImpIVA            decimal.Decimal              `json:"imp_iva"`
	ImpTotal          decimal.Decimal              `json:"imp_total"`
	MonId             string                       `json:"mon_id"`
	MonCotiz          decimal.Decimal              `json:"mon_cotiz"`
	Estado            string                       `json:"estado"`
	CAE               string                       `json:"cae,omitempty"`
	CAEVencimiento    *time.Time                   `json:"cae_vencimiento,omitempty"`
	AfipErrores       string                       `json:"afip_errores,omitempty"`
	AfipObservaciones string                       `json:"afip_observaciones,omitempty"`
	Detalles          []ComprobanteDetalleResponse `json:"detalles,omitempty"`
	Cuotas            []CuotaResponse              `json:"cuotas,omitempty"`
	CreatedAt         time.Time                    `json:"created_at"`
}
