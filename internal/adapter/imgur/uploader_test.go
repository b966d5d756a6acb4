package imgur

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploader_Upload_Success(t *testing.T) {
	t.Parallel()

	payload := []byte{0x89, 'P', 'N', 'G'}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Client-ID test-id", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "base64", r.PostFormValue("type"))
		assert.Equal(t, "犬 preview", r.PostFormValue("title"))

		decoded, err := base64.StdEncoding.DecodeString(r.PostFormValue("image"))
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)

		w.Write([]byte(`{"success":true,"data":{"link":"https://i.imgur.com/abc123.png"}}`))
	}))
	defer srv.Close()

	u := NewWithURL(srv.URL, "test-id", slog.Default())

	link, err := u.Upload(context.Background(), payload, "犬 preview")
	require.NoError(t, err)
	assert.Equal(t, "https://i.imgur.com/abc123.png", link)
}

func TestUploader_Upload_Rejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"data":{}}`))
	}))
	defer srv.Close()

	u := NewWithURL(srv.URL, "test-id", slog.Default())

	link, err := u.Upload(context.Background(), []byte("img"), "x")
	require.NoError(t, err, "rejection degrades, never errors")
	assert.Empty(t, link)
}

func TestUploader_Upload_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	u := NewWithURL(srv.URL, "test-id", slog.Default())

	link, err := u.Upload(context.Background(), []byte("img"), "x")
	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestUploader_Upload_GarbageBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>rate limited</html>"))
	}))
	defer srv.Close()

	u := NewWithURL(srv.URL, "test-id", slog.Default())

	link, err := u.Upload(context.Background(), []byte("img"), "x")
	require.NoError(t, err)
	assert.Empty(t, link)
}
