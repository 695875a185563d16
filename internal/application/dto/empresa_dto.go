package dto

import "time"

// CreateEmpresaRequest alta de empresa emisora. El CUIT pasa por el
// verificador módulo 11 en el caso de uso.
type CreateEmpresaRequest struct {
	RazonSocial       string     `json:"razon_social" validate:"required,min=2,max=200"`
	CUIT              string     `json:"cuit" validate:"required"`
	Domicilio         string     `json:"domicilio"`
	CondicionIVA      string     `json:"condicion_iva" validate:"required"`
	IngresosBrutos    string     `json:"ingresos_brutos"`
	InicioActividades *time.Time `json:"inicio_actividades"`
	PuntoVenta        int        `json:"punto_venta" validate:"required,min=1"`
}

// EmpresaResponse representación pública de una empresa.
type EmpresaResponse struct {
	ID                string     `json:"id"`
	RazonSocial       string     `json:"razon_social"`
	CUIT              string     `json:"cuit"`
	Domicilio         string     `json:"domicilio,omitempty"`
	CondicionIVA      string     `json:"condicion_iva"`
	IngresosBrutos    string     `json:"ingresos_brutos,omitempty"`
	InicioActividades *time.Time `json:"inicio_actividades,omitempty"`
	PuntoVenta        int        `json:"punto_venta"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
