package documents

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/ports/photos"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pink  = color.RGBA{0xff, 0xc0, 0xcb, 0xff}
	red   = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// templatesFS arma plantillas lisas; las rosas son de color rosa para poder
// distinguir la variante elegida.
func templatesFS(t *testing.T) fstest.MapFS {
	t.Helper()
	file := func(w, h int, c color.Color) *fstest.MapFile {
		return &fstest.MapFile{Data: solidPNG(t, w, h, c)}
	}
	return fstest.MapFS{
		tplIDCardBlue:           file(2000, 800, white),
		tplIDCardPink:           file(2000, 800, pink),
		tplCertificate:          file(1000, 1100, white),
		tplVaccinationFrontBlue: file(1500, 1000, white),
		tplVaccinationFrontPink: file(1500, 1000, pink),
		tplVaccinationBackBlue:  file(1500, 1000, white),
		tplVaccinationBackPink:  file(1500, 1000, pink),
		tplSocialBlue:           file(300, 300, white),
		tplSocialPink:           file(300, 300, pink),
		tplSocialLogo:           file(80, 70, white),
		tplCoverLogo:            file(80, 70, white),
	}
}

type fetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

func redPhotoFetcher(t *testing.T) fetcherFunc {
	data := solidPNG(t, 300, 400, red)
	return func(context.Context, string) ([]byte, error) { return data, nil }
}

func failingFetcher() fetcherFunc {
	return func(context.Context, string) ([]byte, error) { return nil, errors.New("connection refused") }
}

func newTestRenderer(t *testing.T, fsys fstest.MapFS, fetcher fetcherFunc, log logger.Logger) *Renderer {
	t.Helper()
	fonts, err := LoadFonts("")
	require.NoError(t, err)
	if log == nil {
		log = logger.Nop()
	}
	// un fetcherFunc nil como interfaz no es nil
	var f photos.Fetcher
	if fetcher != nil {
		f = fetcher
	}
	return NewRenderer(NewAssets(fsys, f), fonts, log)
}

func samplePet() pets.Pet {
	return pets.Pet{
		ID:               "5b0c3c52-1a4e-4f7e-9d0e-3f1f6f0c9a11",
		RegistrationCode: "RJ-0001-001",
		SequenceNumber:   1,
		Profile: pets.Profile{
			Name:          "Thor da Silva",
			Species:       "Cachorro",
			Breed:         "Golden Retriever",
			CoatColor:     "Dourada",
			Owner1:        "Ana Souza",
			Owner2:        "Bruno Lima",
			Phone1:        "21 99999-0000",
			BirthDate:     "10/02/2021",
			Sex:           "Macho",
			Size:          "Grande",
			Neutered:      "Sim",
			Pedigree:      "Não",
			City:          "Niterói",
			RegionCode:    "RJ",
			SocialHandle:  "@thor.golden",
			DocumentColor: pets.ColorBlue,
		},
		Status:    pets.StatusPending,
		PhotoURL:  "https://cdn.example.test/thor.jpg",
		CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}
