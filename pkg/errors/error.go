package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind classifies a tool failure.
type Kind int

const (
	KindInternal Kind = iota
	KindConfig
	KindInvalidArgument
	KindTransport
	KindAPI
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// ToolError is the failure arm of a tool result. Its Error text is what the
// caller ends up reading.
type ToolError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// HTTPError is returned by the transport when Monday.com answers with a
// non-200 status.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Monday.com API error: %s", e.Status)
}

// GraphQLError carries the errors array of a 200 response. Raw is the array
// exactly as the server sent it; Err is used when only a decoded error is
// available.
type GraphQLError struct {
	Raw string
	Err error
}

func (e *GraphQLError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("Monday.com API error: %s", e.Raw)
	}
	return fmt.Sprintf("Monday.com API error: %s", e.Err.Error())
}

func (e *GraphQLError) Unwrap() error {
	return e.Err
}

func NewConfigError(message string) *ToolError {
	return &ToolError{Kind: KindConfig, Message: message}
}

func NewInvalidArgumentError(message string) *ToolError {
	return &ToolError{Kind: KindInvalidArgument, Message: message}
}

func NewNotFoundError(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInternalError(message string, err error) *ToolError {
	return &ToolError{Kind: KindInternal, Message: message, Err: err}
}

// NewAPIError classifies err coming out of the GraphQL client. HTTP and
// network failures become KindTransport, anything else reported by the
// server is KindAPI.
func NewAPIError(message string, err error) *ToolError {
	kind := KindAPI

	var httpErr *HTTPError
	var gqlErr *GraphQLError
	var urlErr *url.Error
	var netErr net.Error
	switch {
	case errors.As(err, &httpErr):
		kind = KindTransport
		err = httpErr
	case errors.As(err, &gqlErr):
		err = gqlErr
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		kind = KindTransport
	default:
		err = &GraphQLError{Err: err}
	}

	return &ToolError{Kind: kind, Message: message, Err: err}
}

// AsToolError returns err as a *ToolError, wrapping foreign errors as internal.
func AsToolError(err error) *ToolError {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}
	return NewInternalError("unexpected error", err)
}

type mondayCtxErrKey struct{}

type mondayCtxErrors struct {
	api []*ToolError
}

// ContextWithMondayErrors returns a context able to collect the API errors
// raised while a tool call is served.
func ContextWithMondayErrors(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if val, ok := ctx.Value(mondayCtxErrKey{}).(*mondayCtxErrors); ok {
		// reset the error lists to avoid leaking errors from previous calls
		val.api = []*ToolError{}
		return ctx
	}
	return context.WithValue(ctx, mondayCtxErrKey{}, &mondayCtxErrors{})
}

// GetMondayAPIErrors retrieves the API errors collected on ctx.
func GetMondayAPIErrors(ctx context.Context) ([]*ToolError, error) {
	if val, ok := ctx.Value(mondayCtxErrKey{}).(*mondayCtxErrors); ok {
		return val.api, nil
	}
	return nil, fmt.Errorf("context does not contain MondayCtxErrors")
}

// RecordAPIError stores a transport or API failure on ctx. Other kinds are
// ignored.
func RecordAPIError(ctx context.Context, err *ToolError) error {
	if err == nil || (err.Kind != KindAPI && err.Kind != KindTransport) {
		return nil
	}
	if val, ok := ctx.Value(mondayCtxErrKey{}).(*mondayCtxErrors); ok {
		val.api = append(val.api, err)
		return nil
	}
	return fmt.Errorf("context does not contain MondayCtxErrors")
}
