package documents

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"petdoc-id/internal/domain/activity"
	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/platform/apperr"
)

type fakeSource struct {
	pet       pets.Pet
	issued    int
	markReady bool
}

func (f *fakeSource) GetByID(_ context.Context, id string) (pets.Pet, error) {
	if id != f.pet.ID {
		return pets.Pet{}, apperr.NotFound("pet not found")
	}
	return f.pet, nil
}

func (f *fakeSource) MarkDocumentsIssued(_ context.Context, p pets.Pet, markReady bool, _ activity.Actor) (pets.Pet, error) {
	f.issued++
	f.markReady = markReady
	if markReady {
		p.Status = pets.StatusReady
	}
	return p, nil
}

func newDocsRouter(t *testing.T, src *fakeSource, fsys fstest.MapFS) http.Handler {
	t.Helper()
	r := newTestRenderer(t, fsys, nil, nil)
	a := NewAssembler(NewAssets(fsys, nil), CoverConfig{BaseURL: "https://petdoc.example.test"}, nil)

	router := chi.NewRouter()
	router.Route("/api/pets", func(pr chi.Router) {
		RegisterRoutes(pr, src, r, a, nil)
	})
	return router
}

func TestDocumentPNGHandler(t *testing.T) {
	p := samplePet()
	p.PhotoURL = ""
	src := &fakeSource{pet: p}
	h := newDocsRouter(t, src, templatesFS(t))

	t.Run("renders png", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pets/"+p.ID+"/documents/certificate", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "image/png", w.Header().Get("Content-Type"))
		img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		require.Equal(t, 1000, img.Bounds().Dx())
	})

	t.Run("unknown kind", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pets/"+p.ID+"/documents/passport", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown pet", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pets/nope/documents/id-card", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDocumentsPDFHandler(t *testing.T) {
	p := samplePet()
	p.PhotoURL = ""
	src := &fakeSource{pet: p}
	h := newDocsRouter(t, src, templatesFS(t))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pets/"+p.ID+"/documents.pdf?mark_ready=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="PetDoc_Thor_da_Silva.pdf"`, w.Header().Get("Content-Disposition"))
	require.Equal(t, "5", w.Header().Get("X-Page-Count"))
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	require.Equal(t, 1, src.issued)
	require.True(t, src.markReady)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pets/"+p.ID+"/documents.pdf?mark_ready=maybe", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 1, src.issued)
}

func TestDocumentsPDFHandler_SocialAssetsMissing(t *testing.T) {
	p := samplePet()
	p.PhotoURL = ""
	src := &fakeSource{pet: p}
	fsys := templatesFS(t)
	delete(fsys, tplSocialLogo)
	delete(fsys, tplSocialBlue)
	h := newDocsRouter(t, src, fsys)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pets/"+p.ID+"/documents.pdf", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "5", w.Header().Get("X-Page-Count"))

	// el post para redes sí depende de sus plantillas
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pets/"+p.ID+"/documents/social-post", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
