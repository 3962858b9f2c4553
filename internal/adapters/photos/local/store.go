// Package local guarda las fotos en disco y las sirve bajo un path público.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"petdoc-id/internal/ports/photos"
)

type Store struct {
	dir        string
	publicPath string
}

func New(dir, publicPath string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("local photo dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	publicPath = "/" + strings.Trim(strings.TrimSpace(publicPath), "/")
	return &Store{dir: dir, publicPath: publicPath}, nil
}

func (s *Store) Upload(_ context.Context, data []byte, filename, contentType string) (photos.Stored, error) {
	if len(data) == 0 {
		return photos.Stored{}, errors.New("empty photo")
	}
	name := uuid.NewString() + extension(filename, contentType)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return photos.Stored{}, fmt.Errorf("write photo: %w", err)
	}
	return photos.Stored{URL: path.Join(s.publicPath, name), ID: name}, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	name, err := cleanName(id)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

// Fetch lee del disco las URLs que emitió este store.
func (s *Store) Fetch(_ context.Context, url string) ([]byte, error) {
	prefix := s.publicPath + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil, photos.ErrUnsupportedURL
	}
	name, err := cleanName(strings.TrimPrefix(url, prefix))
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.dir, name))
}

// Handler sirve el directorio en PublicPath().
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(s.publicPath, http.FileServer(http.Dir(s.dir)))
}

func (s *Store) PublicPath() string { return s.publicPath }

func cleanName(id string) (string, error) {
	name := filepath.Base(strings.TrimSpace(id))
	if name == "" || name == "." || name == ".." || name != strings.TrimSpace(id) {
		return "", fmt.Errorf("invalid photo id %q", id)
	}
	return name, nil
}

func extension(filename, contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	return ".bin"
}
