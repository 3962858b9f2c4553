// Package ratelimit aplica el límite por IP de las rutas públicas sobre
// go-chi/httprate (ventana deslizante en memoria).
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"

	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/httpjson"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/platform/metrics"
)

// ByIP rechaza con 429 cuando una IP supera limit pedidos en window.
// httprate ya setea X-RateLimit-* y Retry-After; acá se agrega la métrica
// por scope y el cuerpo JSON del resto de la API.
func ByIP(limit int, window time.Duration, scope string, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RateLimited.WithLabelValues(scope).Inc()
			log.Warn("rate limit exceeded", logger.Fields{
				"scope":       scope,
				"ip":          ClientIP(r),
				"retry_after": w.Header().Get("Retry-After"),
			})
			httpjson.WriteError(w, apperr.New(apperr.KindRateLimited, "too many requests, try again later"))
		}),
	)
}

// ClientIP usa RemoteAddr; chi middleware.RealIP ya lo reescribe detrás de proxy.
func ClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
