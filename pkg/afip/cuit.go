package afip

import (
	"fmt"
	"unicode"
)

// pesos para el cálculo del dígito verificador del CUIT/CUIL (módulo 11, AFIP).
// Se aplican a los 10 primeros dígitos, de izquierda a derecha.
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ValidateCUIT valida que el CUIT (con o sin guiones) tenga 11 dígitos y un
// dígito verificador correcto según el algoritmo módulo 11 de AFIP.
// cuit puede ser "20-12345678-6", "20.12345678.6" o "20123456786".
func ValidateCUIT(cuit string) error {
	digits := extractDigits(cuit)
	if len(digits) != 11 {
		return fmt.Errorf("afip: CUIT debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	expected, err := computeVerifierDigit(digits[:10])
	if err != nil {
		return err
	}
	if digits[10] != expected {
		return fmt.Errorf("afip: dígito verificador del CUIT inválido: esperado %c, recibido %c", expected, digits[10])
	}
	return nil
}

// NormalizeCUIT devuelve el CUIT como 11 dígitos sin separadores, validándolo antes.
func NormalizeCUIT(cuit string) (string, error) {
	if err := ValidateCUIT(cuit); err != nil {
		return "", err
	}
	return string(extractDigits(cuit)), nil
}

// ComputeCUITVerifierDigit calcula el dígito verificador para los 10 primeros
// dígitos del CUIT. Útil para completar un CUIT a partir de tipo + DNI.
func ComputeCUITVerifierDigit(cuit string) (byte, error) {
	digits := extractDigits(cuit)
	if len(digits) < 10 {
		return 0, fmt.Errorf("afip: se requieren al menos 10 dígitos para calcular el verificador, se encontraron %d", len(digits))
	}
	return computeVerifierDigit(digits[:10])
}

func computeVerifierDigit(base []byte) (byte, error) {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * cuitWeights[i]
	}
	remainder := sum % 11
	switch remainder {
	case 0:
		return '0', nil
	case 1:
		// Resto 1: AFIP no asigna CUITs con este resto para los prefijos estándar.
		return 0, fmt.Errorf("afip: la base del CUIT no admite dígito verificador (resto 1)")
	default:
		return byte('0' + (11 - remainder)), nil
	}
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
