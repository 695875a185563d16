package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de facturación electrónica AFIP.
const (
	EstadoBorrador  = "BORRADOR"   // Guardado para reservar ID; aún sin numerar
	EstadoPendiente = "PENDIENTE"  // Encolado para solicitar CAE
	EstadoEnProceso = "EN_PROCESO" // Solicitud de CAE en curso
	EstadoEmitido   = "EMITIDO"    // CAE otorgado por AFIP
	EstadoRechazado = "RECHAZADO"  // AFIP rechazó la solicitud (errores de negocio)
	EstadoError     = "ERROR"      // Falla de transporte o respuesta malformada; reintentable
)

// Comprobante representa la cabecera de un comprobante fiscal (factura, nota de crédito/débito).
// Tipo usa los códigos WSFE (1=Factura A, 6=Factura B, 11=Factura C, ...).
type Comprobante struct {
	ID             string
	EmpresaID      string
	ClienteID      string
	Tipo           int
	PuntoVenta     int
	Numero         int64 // asignado al facturar (FECompUltimoAutorizado + 1)
	Concepto       int   // 1=Productos, 2=Servicios, 3=Ambos
	Fecha          time.Time
	ImpNeto        decimal.Decimal
	ImpIVA         decimal.Decimal
	ImpTotal       decimal.Decimal
	MonId          string // "PES" salvo facturación en moneda extranjera
	MonCotiz       decimal.Decimal
	// Período de servicio (conceptos 2 y 3), formato AAAAMMDD.
	FchServDesde string
	FchServHasta string
	FchVtoPago   string
	Estado         string
	CAE            string
	CAEVencimiento *time.Time
	// Referencia al comprobante original (notas de crédito/débito).
	ComprobanteAsociadoID string
	// Mensajes devueltos por AFIP en el último intento.
	AfipErrores       string
	AfipObservaciones string
	// Campos de reintento del worker de facturación.
	Intentos         int
	ProximoReintento *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ComprobanteDetalle representa una línea del comprobante.
type ComprobanteDetalle struct {
	ID             string
	ComprobanteID  string
	ArticuloID     string
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal // neto
	AlicuotaIVA    decimal.Decimal // porcentaje
	Subtotal       decimal.Decimal // neto de la línea
	ImporteIVA     decimal.Decimal
}

// NumeroCompleto devuelve el número formateado "PPPP-NNNNNNNN" de uso fiscal.
func (c *Comprobante) NumeroCompleto() string {
	if c.Numero == 0 {
		return ""
	}
	return formatPtoVtaNumero(c.PuntoVenta, c.Numero)
}
