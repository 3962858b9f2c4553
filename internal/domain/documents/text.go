package documents

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "…"

// FitChars pasa a mayúsculas y, si supera budget runas, corta a budget-1 y
// agrega "…". budget <= 0 no limita.
func FitChars(s string, budget int) string {
	t := strings.ToUpper(strings.TrimSpace(s))
	if budget <= 0 || utf8.RuneCountInString(t) <= budget {
		return t
	}
	r := []rune(t)
	return string(r[:budget-1]) + ellipsis
}

// FitWidth recorta s (con "…") hasta que measure lo deje dentro de maxWidth.
func FitWidth(s string, maxWidth float64, measure func(string) float64) string {
	if maxWidth <= 0 || measure(s) <= maxWidth {
		return s
	}
	r := []rune(s)
	for n := len(r) - 1; n > 0; n-- {
		t := strings.TrimRight(string(r[:n]), " ") + ellipsis
		if measure(t) <= maxWidth {
			return t
		}
	}
	return ellipsis
}
