package ebay_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgradar/tcgradar/internal/ebay"
)

func TestOAuthTokenProvider_Token(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		wantCreds := base64.StdEncoding.EncodeToString([]byte("app-id:cert-id"))
		assert.Equal(t, "Basic "+wantCreds, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "tok-1", "expires_in": 7200, "token_type": "Bearer"}`))
	}))
	defer srv.Close()

	p := ebay.NewOAuthTokenProvider("app-id", "cert-id", ebay.WithTokenURL(srv.URL))

	token, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// Cached token is reused without a second request.
	token, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, int64(1), calls.Load())
}

func TestOAuthTokenProvider_RefreshNearExpiry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			_, _ = w.Write([]byte(`{"access_token": "tok-1", "expires_in": 7200}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token": "tok-2", "expires_in": 7200}`))
	}))
	defer srv.Close()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := ebay.NewOAuthTokenProvider(
		"app-id", "cert-id",
		ebay.WithTokenURL(srv.URL),
		ebay.WithNowFunc(func() time.Time { return now }),
	)

	token, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// Inside the 60-second refresh buffer the cached token no longer counts.
	now = now.Add(2*time.Hour - 30*time.Second)
	token, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, int64(2), calls.Load())
}

func TestOAuthTokenProvider_ErrorResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid_client", "error_description": "client authentication failed"}`))
	}))
	defer srv.Close()

	p := ebay.NewOAuthTokenProvider("bad-id", "bad-cert", ebay.WithTokenURL(srv.URL))

	_, err := p.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid_client")
}
