package documents

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomediumitalic"
)

// Fonts guarda las fuentes ya parseadas. Las font.Face no son seguras para
// uso concurrente, así que cada render crea las suyas con face().
type Fonts struct {
	value     *truetype.Font
	signature *truetype.Font
}

// LoadFonts usa Go Bold para los valores y, para la firma, el TTF indicado o
// Go Medium Italic si path está vacío.
func LoadFonts(signaturePath string) (*Fonts, error) {
	value, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse value font: %w", err)
	}

	sigData := gomediumitalic.TTF
	if p := strings.TrimSpace(signaturePath); p != "" {
		sigData, err = os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read signature font: %w", err)
		}
	}
	sig, err := truetype.Parse(sigData)
	if err != nil {
		return nil, fmt.Errorf("parse signature font: %w", err)
	}

	return &Fonts{value: value, signature: sig}, nil
}

// face crea una Face nueva; size en píxeles (72 dpi).
func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
