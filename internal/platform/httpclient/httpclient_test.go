package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetBytes_EnforcesLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer ts.Close()

	c := New(time.Second)

	data, err := c.GetBytes(context.Background(), ts.URL, 64)
	require.NoError(t, err)
	require.Len(t, data, 64)

	_, err = c.GetBytes(context.Background(), ts.URL, 10)
	require.Error(t, err)
}

func TestGetBytes_Non2xxReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := New(time.Second).GetBytes(context.Background(), ts.URL+"/a.jpg", 10)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusNotFound, he.StatusCode)
	require.Equal(t, "nope", he.Body)
}

func TestGetBytes_RelativeURL(t *testing.T) {
	_, err := New(0).GetBytes(context.Background(), "/uploads/a.jpg", 10)
	require.EqualError(t, err, `httpclient: absolute url required, got "/uploads/a.jpg"`)
}
