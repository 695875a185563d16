package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuota.
const (
	CuotaPendiente = "PENDIENTE"
	CuotaPagada    = "PAGADA"
	CuotaVencida   = "VENCIDA"
)

// Cuota representa un pago parcial planificado de un comprobante (venta en cuotas).
// La suma de los importes de todas las cuotas de un comprobante es igual a su ImpTotal.
type Cuota struct {
	ID            string
	ComprobanteID string
	Numero        int // 1..N dentro del plan
	Importe       decimal.Decimal
	Vencimiento   time.Time
	Estado        string
	FechaPago     *time.Time
	MedioPago     string // "efectivo" | "transferencia" | "tarjeta" (informativo)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EstaVencida informa si la cuota sigue impaga después de su vencimiento.
func (c *Cuota) EstaVencida(ahora time.Time) bool {
	return c.Estado == CuotaPendiente && ahora.After(c.Vencimiento)
}
