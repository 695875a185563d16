package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolVendedor = "vendedor"
)

// Usuario representa un usuario de la aplicación (login con email + password).
type Usuario struct {
	ID           string
	EmpresaID    string
	Email        string
	Nombre       string
	PasswordHash string
	Rol          string // "admin" | "vendedor"
	Estado       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
