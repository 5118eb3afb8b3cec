// Package api contains the concrete HTTP implementations of the backend
// gateways, plus the tolerant JSON codecs for the backend's loosely-typed
// payloads.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"mise/config"
	"mise/internal/domain/gateway"
	domainerrors "mise/internal/domain/errors"
	"mise/internal/errors"

	"go.uber.org/fx"
)

// maxResponseBody bounds how much of a response is read; product photos are
// the largest payloads this client ever sees.
const maxResponseBody = 16 << 20

// Params defines the dependencies of the backend client.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Tokens gateway.TokenSource
}

// Client issues authenticated REST calls against the backend and classifies
// failures into the application error taxonomy. It performs no retries;
// retrying is the refresh coordinator's concern.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     gateway.TokenSource
	logger     *slog.Logger
}

// NewClient creates the backend client from configuration.
func NewClient(params Params) (*Client, error) {
	base, err := url.Parse(params.Config.Backend.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid backend base URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("backend base URL %q must be absolute", params.Config.Backend.BaseURL)
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: params.Config.Backend.Timeout,
		},
		tokens: params.Tokens,
		logger: params.Logger,
	}, nil
}

// do issues one request and returns the raw response body. body, when
// non-nil, is JSON-encoded. When authRequired is set the current bearer
// token is attached; an absent token fails locally with Unauthorized.
func (c *Client) do(ctx context.Context, method, path string, body any, authRequired bool) ([]byte, error) {
	var token string
	if authRequired {
		current, ok := c.tokens.CurrentToken()
		if !ok {
			return nil, domainerrors.ErrUnauthorized.WrapMessage("no session token for " + path)
		}
		token = current
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed before a response arrived",
			slog.String("method", method), slog.String("path", path), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTransport, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTransport, err.Error())
	}

	if err := classifyStatus(resp.StatusCode, raw); err != nil {
		c.logger.Debug("backend rejected request",
			slog.String("method", method), slog.String("path", path),
			slog.Int("status", resp.StatusCode))

		return nil, err
	}

	return raw, nil
}

// classifyStatus maps a non-success HTTP status onto the error taxonomy.
func classifyStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domainerrors.ErrUnauthorized.WrapMessage("backend returned " + http.StatusText(status))
	case status == http.StatusNotFound:
		return errors.WithStack(domainerrors.ErrNotFound)
	case status < 500:
		return domainerrors.NewClientError(status, bodyExcerpt(body))
	default:
		return domainerrors.NewServerError(status, bodyExcerpt(body))
	}
}

// bodyExcerpt trims an error body down to something loggable.
func bodyExcerpt(body []byte) string {
	const limit = 256
	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > limit {
		excerpt = excerpt[:limit]
	}

	return excerpt
}
