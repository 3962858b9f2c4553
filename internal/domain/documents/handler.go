package documents

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"petdoc-id/internal/domain/activity"
	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/httpjson"
	"petdoc-id/internal/platform/logger"
)

// PetSource es lo que los handlers necesitan de pets.Service.
type PetSource interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	MarkDocumentsIssued(ctx context.Context, p pets.Pet, markReady bool, actor activity.Actor) (pets.Pet, error)
}

// RegisterRoutes monta los documentos bajo el router de fichas (/api/pets).
func RegisterRoutes(r chi.Router, src PetSource, renderer *Renderer, asm *Assembler, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Get("/{id}/documents/{kind}", documentPNGHandler(src, renderer))
	r.Get("/{id}/documents.pdf", documentsPDFHandler(src, renderer, asm, log))
}

// documentPNGHandler
// @Summary Documento de la ficha en PNG
// @Tags documents
// @Produce png
// @Param id path string true "Pet ID"
// @Param kind path string true "id-card | certificate | vaccination-front | vaccination-back | social-post"
// @Router /api/pets/{id}/documents/{kind} [get]
func documentPNGHandler(src PetSource, renderer *Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := ParseKind(chi.URLParam(r, "kind"))
		if !ok {
			httpjson.WriteError(w, apperr.NotFound("unknown document kind"))
			return
		}

		p, err := src.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		c, err := renderer.Render(r.Context(), p, kind)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		data, err := c.PNG()
		if err != nil {
			httpjson.WriteError(w, apperr.Wrap(apperr.KindRender, "png encode failed", err))
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// documentsPDFHandler genera el PDF completo. Con mark_ready=true la ficha
// pasa a ready después de generarlo.
// @Summary PDF con todos los documentos
// @Tags documents
// @Produce application/pdf
// @Param id path string true "Pet ID"
// @Param qr_url query string false "destino del QR (default {public.base_url}/r/{code})"
// @Param mark_ready query bool false "marcar la ficha como ready"
// @Router /api/pets/{id}/documents.pdf [get]
func documentsPDFHandler(src PetSource, renderer *Renderer, asm *Assembler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		markReady := false
		if raw := strings.TrimSpace(q.Get("mark_ready")); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				httpjson.WriteError(w, apperr.Validation("mark_ready must be true or false"))
				return
			}
			markReady = v
		}

		p, err := src.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		set, err := renderer.RenderPrintable(r.Context(), p)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		doc, err := asm.Build(r.Context(), set.Pages(), p.RegistrationCode, q.Get("qr_url"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		if _, err := src.MarkDocumentsIssued(r.Context(), p, markReady, pets.AdminActor(r)); err != nil {
			log.Warn("mark documents issued failed", logger.Fields{"pet_id": p.ID, "error": err})
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+pdfFilename(p)+`"`)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Page-Count", strconv.Itoa(doc.PageCount))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc.Bytes)
	}
}

var unsafeFilename = regexp.MustCompile(`[^\w\-]+`)

func pdfFilename(p pets.Pet) string {
	name := unsafeFilename.ReplaceAllString(strings.TrimSpace(p.Name), "_")
	if name == "" {
		name = "Pet"
	}
	return "PetDoc_" + name + ".pdf"
}
