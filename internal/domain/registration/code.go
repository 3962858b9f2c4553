// Package registration asigna números de registro secuenciales por región.
//
// Cada región tiene su propio contador. El n-ésimo registro de una región se
// formatea como REGION-LLLL-III: lotes de 999 ítems numerados desde 1.
package registration

import (
	"fmt"
	"strings"
)

const BatchSize = 999

// FormatCode devuelve "{region}-{lote:04d}-{item:03d}" para la secuencia n (n ≥ 1).
// Para n < 1 devuelve el código cero "{region}-0000-000".
func FormatCode(region string, n int64) string {
	if n < 1 {
		return fmt.Sprintf("%s-0000-000", region)
	}
	batch := (n-1)/BatchSize + 1
	item := (n-1)%BatchSize + 1
	return fmt.Sprintf("%s-%04d-%03d", region, batch, item)
}

// NormalizeRegion recorta y pasa a mayúsculas el código de región.
func NormalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}
