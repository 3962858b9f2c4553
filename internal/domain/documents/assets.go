package documents

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io/fs"
	"strings"

	"github.com/disintegration/imaging"

	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/ports/photos"
)

// Assets resuelve plantillas (de un fs.FS) y fotos (vía photos.Fetcher).
type Assets struct {
	templates fs.FS
	photos    photos.Fetcher
}

func NewAssets(templates fs.FS, fetcher photos.Fetcher) *Assets {
	return &Assets{templates: templates, photos: fetcher}
}

// Template carga una plantilla. Cualquier falla es un error de render.
func (a *Assets) Template(name string) (image.Image, error) {
	if a.templates == nil {
		return nil, apperr.New(apperr.KindRender, "document templates are not configured")
	}
	data, err := fs.ReadFile(a.templates, name)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRender, fmt.Sprintf("template %s unavailable", name), err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRender, fmt.Sprintf("template %s is not a valid image", name), err)
	}
	return img, nil
}

// Photo descarga y decodifica la foto de la ficha respetando la orientación EXIF.
func (a *Assets) Photo(ctx context.Context, url string) (image.Image, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, nil
	}
	if a.photos == nil {
		return nil, photos.ErrUnsupportedURL
	}
	data, err := a.photos.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

func idCardTemplate(c pets.DocumentColor) string {
	if c == pets.ColorPink {
		return tplIDCardPink
	}
	return tplIDCardBlue
}

func vaccinationTemplates(c pets.DocumentColor) (front, back string) {
	if c == pets.ColorPink {
		return tplVaccinationFrontPink, tplVaccinationBackPink
	}
	return tplVaccinationFrontBlue, tplVaccinationBackBlue
}

func socialTemplate(c pets.DocumentColor) string {
	if c == pets.ColorPink {
		return tplSocialPink
	}
	return tplSocialBlue
}
