package entity

import "time"

// Cliente representa un cliente de la empresa (receptor de comprobantes).
// DocTipo y CondicionIVA usan los códigos de las tablas WSFE (pkg/afip).
type Cliente struct {
	ID           string
	EmpresaID    string
	RazonSocial  string
	DocTipo      int    // 80=CUIT, 86=CUIL, 96=DNI, 99=Consumidor Final
	DocNro       string // siempre texto: preserva ceros a la izquierda
	CondicionIVA int    // código RG 5616 (1=RI, 5=CF, 6=Monotributo, ...)
	Domicilio    string
	Localidad    string
	Email        string
	Telefono     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
