package dto

import "time"

// CreateEnvioRequest alta de remito de envío para un comprobante.
type CreateEnvioRequest struct {
	ComprobanteID string `json:"comprobante_id" validate:"required,uuid4"`
	Destinatario  string `json:"destinatario" validate:"required,min=2,max=200"`
	Domicilio     string `json:"domicilio" validate:"required"`
	Localidad     string `json:"localidad" validate:"required"`
	Provincia     string `json:"provincia"`
	CodigoPostal  string `json:"codigo_postal"`
	Transportista string `json:"transportista"`
	Observaciones string `json:"observaciones"`
}

// ActualizarEnvioRequest cambio de estado del envío. Seguimiento se informa
// al despachar.
type ActualizarEnvioRequest struct {
	Estado      string `json:"estado" validate:"required,oneof=PREPARACION DESPACHADO ENTREGADO"`
	Seguimiento string `json:"seguimiento"`
}

// EnvioResponse representación pública de un envío.
type EnvioResponse struct {
	ID            string     `json:"id"`
	EmpresaID     string     `json:"empresa_id"`
	ComprobanteID string     `json:"comprobante_id"`
	Destinatario  string     `json:"destinatario"`
	Domicilio     string     `json:"domicilio"`
	Localidad     string     `json:"localidad"`
	Provincia     string     `json:"provincia,omitempty"`
	CodigoPostal  string     `json:"codigo_postal,omitempty"`
	Transportista string     `json:"transportista,omitempty"`
	Seguimiento   string     `json:"seguimiento,omitempty"`
	Estado        string     `json:"estado"`
	DespachadoEn  *time.Time `json:"despachado_en,omitempty"`
	EntregadoEn   *time.Time `json:"entregado_en,omitempty"`
	Observaciones string     `json:"observaciones,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
