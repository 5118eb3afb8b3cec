package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"mise/config"
	domainerrors "mise/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource fake for tests.
type staticTokens struct {
	token  string
	userID string
}

func (s *staticTokens) CurrentToken() (string, bool) { return s.token, s.token != "" }
func (s *staticTokens) CurrentUserID() (string, bool) {
	return s.userID, s.userID != ""
}

func newTestClient(t *testing.T, baseURL string, tokens *staticTokens) *Client {
	t.Helper()

	cfg := &config.Config{}
	cfg.Backend.BaseURL = baseURL
	cfg.Backend.Timeout = 0

	client, err := NewClient(Params{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens: tokens,
	})
	require.NoError(t, err)

	return client
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &staticTokens{token: "tok-1"})

	_, err := client.do(context.Background(), http.MethodGet, "/get-order/r1", nil, true)

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_UnauthorizedWithoutTokenBeforeNetwork(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &staticTokens{})

	_, err := client.do(context.Background(), http.MethodGet, "/get-order/r1", nil, true)

	require.Error(t, err)
	assert.True(t, domainerrors.IsUnauthorized(err))
	assert.Zero(t, hits, "a missing token must fail before the network is touched")
}

func TestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.True(t, domainerrors.IsUnauthorized(err))
			},
		},
		{
			name:   "404 not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				assert.True(t, domainerrors.IsNotFound(err))
			},
		},
		{
			name:   "400 client error",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var appErr domainerrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "CLIENT_ERROR", appErr.ErrorCode())
				assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
			},
		},
		{
			name:   "502 server error",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				var appErr domainerrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "SERVER_ERROR", appErr.ErrorCode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, &staticTokens{token: "tok"})
			_, err := client.do(context.Background(), http.MethodGet, "/x", nil, true)

			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, server.URL, &staticTokens{token: "tok"})
	_, err := client.do(context.Background(), http.MethodGet, "/x", nil, true)

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRANSPORT_FAILURE", appErr.ErrorCode())
}

func TestClient_RejectsRelativeBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = "not-a-url"

	_, err := NewClient(Params{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens: &staticTokens{},
	})

	require.Error(t, err)
}
