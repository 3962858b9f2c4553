// Package remote descarga fotos alojadas fuera del proceso (Cloudinary u otra CDN).
package remote

import (
	"context"
	"strings"

	"petdoc-id/internal/platform/httpclient"
	"petdoc-id/internal/platform/metrics"
	"petdoc-id/internal/ports/photos"
)

const DefaultMaxBytes = 10 << 20

type Fetcher struct {
	client   *httpclient.Client
	maxBytes int64
}

func NewFetcher(client *httpclient.Client, maxBytes int64) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{client: client, maxBytes: maxBytes}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, photos.ErrUnsupportedURL
	}
	data, err := f.client.GetBytes(ctx, url, f.maxBytes)
	metrics.PhotoOps.WithLabelValues("fetch", metrics.Result(err)).Inc()
	return data, err
}
