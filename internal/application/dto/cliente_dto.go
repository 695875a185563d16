package dto

import "time"

// CreateClienteRequest alta de cliente. DocNro se valida según DocTipo en el
// caso de uso (los CUIT/CUIL pasan por el verificador módulo 11).
type CreateClienteRequest struct {
	RazonSocial  string `json:"razon_social" validate:"required,min=2,max=200"`
	DocTipo      int    `json:"doc_tipo" validate:"required,oneof=80 86 96 99"`
	DocNro       string `json:"doc_nro" validate:"required,numeric"`
	CondicionIVA int    `json:"condicion_iva" validate:"required"`
	Domicilio    string `json:"domicilio"`
	Localidad    string `json:"localidad"`
	Email        string `json:"email" validate:"omitempty,email"`
	Telefono     string `json:"telefono"`
}

// UpdateClienteRequest modificación de cliente.
type UpdateClienteRequest struct {
	RazonSocial  string `json:"razon_social" validate:"required,min=2,max=200"`
	DocTipo      int    `json:"doc_tipo" validate:"required,oneof=80 86 96 99"`
	DocNro       string `json:"doc_nro" validate:"required,numeric"`
	CondicionIVA int    `json:"condicion_iva" validate:"required"`
	Domicilio    string `json:"domicilio"`
	Localidad    string `json:"localidad"`
	Email        string `json:"email" validate:"omitempty,email"`
	Telefono     string `json:"telefono"`
}

// ClienteResponse representación pública de un cliente.
type ClienteResponse struct {
	ID           string    `json:"id"`
	EmpresaID    string    `json:"empresa_id"`
	RazonSocial  string    `json:"razon_social"`
	DocTipo      int       `json:"doc_tipo"`
	DocNro       string    `json:"doc_nro"`
	CondicionIVA int       `json:"condicion_iva"`
	Domicilio    string    `json:"domicilio,omitempty"`
	Localidad    string    `json:"localidad,omitempty"`
	Email        string    `json:"email,omitempty"`
	Telefono     string    `json:"telefono,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
