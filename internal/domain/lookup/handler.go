package lookup

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"petdoc-id/internal/platform/httpjson"
)

// LookupHandler
// @Summary Consulta pública por código de registro
// @Tags public
// @Produce json
// @Param code query string true "código de registro (alias: registro)"
// @Success 200 {object} Result
// @Failure 404 {object} map[string]string
// @Router /api/lookup [get]
func LookupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		code := q.Get("code")
		if strings.TrimSpace(code) == "" {
			code = q.Get("registro")
		}

		res, err := svc.Lookup(r.Context(), code)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, res)
	}
}

// RedirectHandler atiende /r/{code} (destino del QR) y redirige a la UI de consulta.
func RedirectHandler(lookupPath string) http.HandlerFunc {
	if strings.TrimSpace(lookupPath) == "" {
		lookupPath = "/"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := NormalizeCode(chi.URLParam(r, "code"))
		target := lookupPath + "?registro=" + url.QueryEscape(code)
		http.Redirect(w, r, target, http.StatusFound)
	}
}
