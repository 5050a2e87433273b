package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type staticTokenSource string

func (s staticTokenSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: string(s), TokenType: "Bearer"}, nil
}

func TestHTTPGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/redfish/v1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	h, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	resp, err := h.Get(context.Background(), "/redfish/v1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"ok": true}`, string(resp.Body))
}

func TestHTTPGetNetworkFailureWrapsTransportFail(t *testing.T) {
	h, err := NewHTTP("http://127.0.0.1:0")
	require.NoError(t, err)

	_, err = h.Get(context.Background(), "/redfish/v1")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTransportFail)
}

func TestHTTPAttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	h, err := NewHTTP(srv.URL, WithTokenSource(staticTokenSource("tok123")))
	require.NoError(t, err)

	resp, err := h.Get(context.Background(), "/redfish/v1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
}
