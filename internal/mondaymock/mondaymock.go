// Package mondaymock provides an http.RoundTripper that answers Monday.com
// GraphQL requests from a list of matchers, for use in tests.
package mondaymock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
)

// Matcher answers a request whose query contains Fragment and, when
// Variables is non-nil, whose variables equal Variables once both are
// round-tripped through JSON.
type Matcher struct {
	Fragment  string
	Variables map[string]any
	Response  Response
}

// Response describes what a matched request gets back.
type Response struct {
	// StatusCode defaults to 200.
	StatusCode int
	Data       any
	Errors     []string
	// Body replaces the generated body when set.
	Body string
}

// Request is a recorded GraphQL request.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
	Header    http.Header    `json:"-"`
}

// Transport serves matchers in order; each request is answered by the
// first matcher that fits.
type Transport struct {
	mu       sync.Mutex
	matchers []Matcher
	requests []Request
}

func NewTransport(matchers ...Matcher) *Transport {
	return &Transport{matchers: matchers}
}

// NewMockedHTTPClient returns an http.Client backed by a new Transport.
func NewMockedHTTPClient(matchers ...Matcher) *http.Client {
	return &http.Client{Transport: NewTransport(matchers...)}
}

// Requests returns the requests seen so far.
func (t *Transport) Requests() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Request(nil), t.requests...)
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	_ = req.Body.Close()

	var gqlReq Request
	if err := json.Unmarshal(body, &gqlReq); err != nil {
		return nil, fmt.Errorf("mondaymock: request body is not a GraphQL request: %w", err)
	}
	gqlReq.Header = req.Header.Clone()

	t.mu.Lock()
	t.requests = append(t.requests, gqlReq)
	matchers := t.matchers
	t.mu.Unlock()

	for _, m := range matchers {
		if !strings.Contains(gqlReq.Query, m.Fragment) {
			continue
		}
		if m.Variables != nil && !sameJSON(m.Variables, gqlReq.Variables) {
			continue
		}
		return m.Response.build(req)
	}

	return nil, fmt.Errorf("mondaymock: no matcher for query %q with variables %v", gqlReq.Query, gqlReq.Variables)
}

func (r Response) build(req *http.Request) (*http.Response, error) {
	code := r.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	body := []byte(r.Body)
	if r.Body == "" {
		payload := map[string]any{}
		if r.Data != nil {
			payload["data"] = r.Data
		}
		if len(r.Errors) > 0 {
			errs := make([]map[string]any, 0, len(r.Errors))
			for _, msg := range r.Errors {
				errs = append(errs, map[string]any{"message": msg})
			}
			payload["errors"] = errs
		}
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}

// DataResponse is a shorthand for a successful response.
func DataResponse(data any) Response {
	return Response{Data: data}
}

// ErrorResponse is a shorthand for a 200 response carrying GraphQL errors.
func ErrorResponse(messages ...string) Response {
	return Response{Errors: messages}
}

func sameJSON(expected, actual map[string]any) bool {
	a, err := normalize(expected)
	if err != nil {
		return false
	}
	b, err := normalize(actual)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func normalize(v map[string]any) (any, error) {
	if v == nil {
		v = map[string]any{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
