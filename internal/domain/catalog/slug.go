package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics descompone a NFD, elimina marcas diacríticas (Mn) y recompone.
// "Café" -> "Cafe", "Ñandú" -> "Nandu".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify deriva un slug a partir de un nombre: minúsculas, sin diacríticos,
// runs de caracteres no alfanuméricos colapsados a un guion.
func Slugify(name string) string {
	folded, _, err := transform.String(foldDiacritics, strings.TrimSpace(name))
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	prevDash := true // evita guion inicial
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug resuelve colisiones con sufijo numérico: cafe, cafe-1, cafe-2...
// exists consulta si un slug ya está tomado dentro del scope (empresa).
func UniqueSlug(base string, exists func(slug string) (bool, error)) (string, error) {
	if base == "" {
		return "", fmt.Errorf("slug base vacío")
	}
	taken, err := exists(base)
	if err != nil {
		return "", fmt.Errorf("verificar slug %q: %w", base, err)
	}
	if !taken {
		return base, nil
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("verificar slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
}

// Capitalize normaliza un nombre al escribirlo: trim, primera letra en
// mayúscula y el resto en minúscula ("bEBIDAS" -> "Bebidas").
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
