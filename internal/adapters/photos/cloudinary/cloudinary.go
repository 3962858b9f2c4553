// Package cloudinary sube y borra fotos en Cloudinary con el SDK oficial.
package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"petdoc-id/internal/ports/photos"
)

// transformación que usa la UI para las fotos de la ficha
const optimizedTransform = "c_fill,f_auto,g_auto,q_auto,w_800"

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	// Optimized guarda la URL con la transformación de 800px en vez de secure_url.
	Optimized bool
	Timeout   time.Duration

	// sobreescribible en tests
	UploadPrefix string
}

type Store struct {
	cfg Config
	cld *cld.Cloudinary
}

func New(cfg Config) (*Store, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary: cloud name, api key and api secret are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}

	c, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	if cfg.UploadPrefix != "" {
		c.Config.API.UploadPrefix = cfg.UploadPrefix
	}
	c.Config.URL.Secure = true
	c.Config.URL.Analytics = false

	return &Store{cfg: cfg, cld: c}, nil
}

func (s *Store) Upload(ctx context.Context, data []byte, _, _ string) (photos.Stored, error) {
	if len(data) == 0 {
		return photos.Stored{}, errors.New("cloudinary: empty photo")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{Folder: s.cfg.Folder})
	if err != nil {
		return photos.Stored{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return photos.Stored{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.PublicID == "" || res.SecureURL == "" {
		return photos.Stored{}, errors.New("cloudinary upload: incomplete response")
	}

	u := res.SecureURL
	if s.cfg.Optimized {
		if u, err = s.OptimizedURL(res.PublicID); err != nil {
			return photos.Stored{}, err
		}
	}
	return photos.Stored{URL: u, ID: res.PublicID}, nil
}

// Delete trata "not found" como éxito: la foto ya no está.
func (s *Store) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	switch res.Result {
	case "ok", "not found":
		return nil
	}
	return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
}

func (s *Store) OptimizedURL(publicID string) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("cloudinary url: %w", err)
	}
	img.Transformation = optimizedTransform
	return img.String()
}
