package entity

import "fmt"

// formatPtoVtaNumero formatea punto de venta y número al estilo fiscal argentino:
// 4 dígitos de punto de venta, guion, 8 dígitos de número (ej: "0003-00001245").
func formatPtoVtaNumero(ptoVta int, numero int64) string {
	return fmt.Sprintf("%04d-%08d", ptoVta, numero)
}
