package monday

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
	"github.com/shurcooL/graphql"
	"github.com/tidwall/gjson"
)

const (
	DefaultAPIURL      = "https://api.monday.com/v2"
	DefaultHTTPTimeout = 30 * time.Second

	// maxErrorBodyBytes bounds how much of a failed response is kept for logs.
	maxErrorBodyBytes = 64 << 10
)

// GetClientFn returns a GraphQL client for the Monday.com API.
type GetClientFn func(context.Context) (*graphql.Client, error)

// ClientConfig holds what is needed to reach the Monday.com API.
type ClientConfig struct {
	APIKey     string
	APIURL     string
	APIVersion string
	UserAgent  string
	Timeout    time.Duration
	// Transport is the underlying round tripper, http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// NewClient builds a GraphQL client authenticated with cfg.APIKey.
func NewClient(cfg ClientConfig) (*graphql.Client, error) {
	if cfg.APIKey == "" {
		return nil, mondayErrors.NewConfigError("MONDAY_API_KEY is not set")
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			transport:  base,
			apiKey:     cfg.APIKey,
			apiVersion: cfg.APIVersion,
			userAgent:  cfg.UserAgent,
		},
	}
	return graphql.NewClient(apiURL, httpClient), nil
}

// NewClientFn returns a GetClientFn building a fresh client from cfg on
// every call.
func NewClientFn(cfg ClientConfig) GetClientFn {
	return func(context.Context) (*graphql.Client, error) {
		return NewClient(cfg)
	}
}

type authTransport struct {
	transport  http.RoundTripper
	apiKey     string
	apiVersion string
	userAgent  string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", t.apiKey)
	if t.apiVersion != "" {
		req.Header.Set("API-Version", t.apiVersion)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		slog.Error("Monday.com API request failed", "status", resp.Status, "body", string(body))

		return nil, &mondayErrors.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}

	// The GraphQL client only keeps the first message of an errors array.
	if errs := gjson.GetBytes(body, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		slog.Error("Monday.com API returned errors", "errors", errs.Raw)
		return nil, &mondayErrors.GraphQLError{Raw: errs.Raw}
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
