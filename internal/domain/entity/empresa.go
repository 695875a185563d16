package entity

import "time"

// Empresa representa al emisor de comprobantes (datos fiscales AFIP).
type Empresa struct {
	ID                 string
	RazonSocial        string
	CUIT               string // 11 dígitos, sin guiones
	Domicilio          string
	CondicionIVA       string // "Responsable Inscripto" | "Monotributo" | "Exento"
	IngresosBrutos     string
	InicioActividades  *time.Time
	PuntoVenta         int // Punto de venta habilitado en AFIP para WSFE
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
