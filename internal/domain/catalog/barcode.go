package catalog

import "fmt"

// Formatos de código de barras soportados.
const (
	BarcodeFormatCode128 = "code128"
	BarcodeFormatEAN13   = "ean13"
)

// ValidateBarcodeValue verifica que un valor pueda codificarse en el formato
// indicado. Code128 acepta texto arbitrario hasta 80 caracteres; EAN-13 exige
// exactamente 12 o 13 dígitos numéricos.
func ValidateBarcodeValue(value, format string) error {
	if value == "" {
		return fmt.Errorf("valor de código de barras vacío")
	}
	switch format {
	case BarcodeFormatCode128:
		if len(value) > 80 {
			return fmt.Errorf("valor demasiado largo para Code128 (máximo 80 caracteres)")
		}
		return nil
	case BarcodeFormatEAN13:
		if !isDigits(value) {
			return fmt.Errorf("EAN-13 solo admite dígitos")
		}
		if len(value) != 12 && len(value) != 13 {
			return fmt.Errorf("EAN-13 requiere 12 o 13 dígitos")
		}
		return nil
	default:
		return fmt.Errorf("formato de código de barras no soportado: %s", format)
	}
}
