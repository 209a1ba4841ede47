package catalog

import (
	"fmt"
	"math/rand"
	"strings"
)

// EAN13CheckDigit calcula el dígito de control de una base de 12 dígitos.
// Posiciones indexadas desde 0 por la izquierda: suma de índices pares +
// 3 × suma de índices impares; control = (10 - total%10) % 10.
func EAN13CheckDigit(base12 string) (int, error) {
	if len(base12) != 12 || !isDigits(base12) {
		return 0, fmt.Errorf("base EAN-13 inválida: se esperan 12 dígitos, se recibió %q", base12)
	}
	oddSum, evenSum := 0, 0
	for i, r := range base12 {
		d := int(r - '0')
		if i%2 == 0 {
			oddSum += d
		} else {
			evenSum += d
		}
	}
	total := oddSum + evenSum*3
	return (10 - total%10) % 10, nil
}

// ValidEAN13 verifica longitud, dígitos y dígito de control.
func ValidEAN13(code string) bool {
	if len(code) != 13 || !isDigits(code) {
		return false
	}
	check, err := EAN13CheckDigit(code[:12])
	if err != nil {
		return false
	}
	return int(code[12]-'0') == check
}

// internalEANPrefix marca los códigos generados internamente (rango GS1 de
// uso interno 200-299, nunca choca con códigos comerciales reales).
const internalEANPrefix = "200"

// GenerateEAN13 genera un código interno válido: prefijo 200 + 9 dígitos
// aleatorios + control. El rng se inyecta para tests deterministas.
func GenerateEAN13(rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(13)
	b.WriteString(internalEANPrefix)
	for i := 0; i < 9; i++ {
		b.WriteByte(byte('0' + rng.Intn(10)))
	}
	base := b.String()
	check, _ := EAN13CheckDigit(base)
	return fmt.Sprintf("%s%d", base, check)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
