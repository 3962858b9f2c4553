package cloudinary

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, h http.HandlerFunc, optimized bool) *Store {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	s, err := New(Config{
		CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "petdoc/photos",
		Optimized: optimized, UploadPrefix: ts.URL,
	})
	require.NoError(t, err)
	return s
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{CloudName: "demo"})
	require.Error(t, err)
}

func TestUpload(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/demo/image/upload"), r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "key", r.FormValue("api_key"))
		require.Equal(t, "petdoc/photos", r.FormValue("folder"))
		require.NotEmpty(t, r.FormValue("signature"))

		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		require.Equal(t, "jpeg", string(data))

		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/petdoc/photos/abc.jpg","public_id":"petdoc/photos/abc"}`))
	}, true)

	st, err := s.Upload(context.Background(), []byte("jpeg"), "milo.jpg", "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "petdoc/photos/abc", st.ID)
	require.True(t, strings.HasPrefix(st.URL, "https://res.cloudinary.com/demo/image/upload/"), st.URL)
	require.Contains(t, st.URL, optimizedTransform)
	require.Contains(t, st.URL, "petdoc/photos/abc")
}

func TestUpload_NotOptimizedKeepsSecureURL(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/abc.jpg","public_id":"abc"}`))
	}, false)

	st, err := s.Upload(context.Background(), []byte("jpeg"), "milo.jpg", "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/abc.jpg", st.URL)
}

func TestUpload_APIError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}, false)

	_, err := s.Upload(context.Background(), []byte("jpeg"), "milo.jpg", "image/jpeg")
	require.Error(t, err)

	_, err = s.Upload(context.Background(), nil, "milo.jpg", "image/jpeg")
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	results := []string{`{"result":"ok"}`, `{"result":"not found"}`, `{"result":"error"}`}
	i := 0
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/demo/image/destroy"), r.URL.Path)
		require.Equal(t, "petdoc/photos/abc", r.FormValue("public_id"))
		_, _ = w.Write([]byte(results[i]))
		i++
	}, false)

	ctx := context.Background()
	require.NoError(t, s.Delete(ctx, "petdoc/photos/abc"))
	require.NoError(t, s.Delete(ctx, "petdoc/photos/abc"))
	require.Error(t, s.Delete(ctx, "petdoc/photos/abc"))

	// id vacío no llama a la API
	require.NoError(t, s.Delete(ctx, ""))
	require.Equal(t, 3, i)
}
