// Package metrics registra los collectors de Prometheus del servicio.
// Se declaran a nivel de paquete para que varios routers en tests no
// intenten registrarlos dos veces.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petdoc_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "petdoc_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	CodesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petdoc_registration_codes_issued_total",
		Help: "Registration codes allocated, by counter backend.",
	}, []string{"backend"})

	PetsRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petdoc_pets_registered_total",
		Help: "Pet records created, by channel (admin or public).",
	}, []string{"channel"})

	PhotoOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petdoc_photo_operations_total",
		Help: "Photo storage operations by op (upload, delete, fetch) and result.",
	}, []string{"op", "result"})

	DocumentsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petdoc_documents_rendered_total",
		Help: "Document canvases rendered, by kind and result.",
	}, []string{"kind", "result"})

	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "petdoc_document_render_seconds",
		Help:    "Time spent rendering one document canvas.",
		Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"kind"})

	PDFBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petdoc_pdf_builds_total",
		Help: "PDF assemblies by result.",
	}, []string{"result"})

	Lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petdoc_lookups_total",
		Help: "Public lookups by result (hit, miss, not_found).",
	}, []string{"result"})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petdoc_ratelimit_rejections_total",
		Help: "Requests rejected by the rate limiter, by scope.",
	}, []string{"scope"})
)

// Result traduce un error a la etiqueta "ok"/"error".
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func Handler() http.Handler {
	return promhttp.Handler()
}
