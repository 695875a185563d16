package entity

import "time"

// Estados de un envío.
const (
	EnvioPreparacion = "PREPARACION"
	EnvioDespachado  = "DESPACHADO"
	EnvioEntregado   = "ENTREGADO"
)

// Envio representa el remito de envío de mercadería asociado a un comprobante.
type Envio struct {
	ID            string
	EmpresaID     string
	ComprobanteID string
	Destinatario  string
	Domicilio     string
	Localidad     string
	Provincia     string
	CodigoPostal  string
	Transportista string
	Seguimiento   string // número de tracking del transportista (opcional)
	Estado        string
	DespachadoEn  *time.Time
	EntregadoEn   *time.Time
	Observaciones string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
