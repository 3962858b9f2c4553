package photos

import (
	"context"
	"errors"
)

// ErrUnsupportedURL lo devuelve un Fetcher cuando la URL no es suya.
var ErrUnsupportedURL = errors.New("unsupported photo url")

// Stored identifica una foto guardada: URL pública + id para borrarla.
type Stored struct {
	URL string
	ID  string
}

// Storage guarda y borra fotos de mascotas.
type Storage interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (Stored, error)
	Delete(ctx context.Context, id string) error
}

// Fetcher descarga los bytes de una foto a partir de su URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Fetchers prueba cada Fetcher en orden hasta que uno acepte la URL.
type Fetchers []Fetcher

func (fs Fetchers) Fetch(ctx context.Context, url string) ([]byte, error) {
	for _, f := range fs {
		if f == nil {
			continue
		}
		data, err := f.Fetch(ctx, url)
		if errors.Is(err, ErrUnsupportedURL) {
			continue
		}
		return data, err
	}
	return nil, ErrUnsupportedURL
}
