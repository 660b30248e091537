package errors

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError(t *testing.T) {
	t.Run("http failure surfaced through the http client is transport", func(t *testing.T) {
		httpErr := &HTTPError{StatusCode: 401, Status: "401 Unauthorized", Body: `{"errors":["Not Authenticated"]}`}
		wrapped := &url.Error{Op: "Post", URL: "https://api.monday.com/v2", Err: httpErr}

		toolErr := NewAPIError("Error creating item", wrapped)

		assert.Equal(t, KindTransport, toolErr.Kind)
		assert.Equal(t, "Error creating item: Monday.com API error: 401 Unauthorized", toolErr.Error())
		assert.ErrorIs(t, toolErr, httpErr)
	})

	t.Run("network failure is transport", func(t *testing.T) {
		wrapped := &url.Error{Op: "Post", URL: "https://api.monday.com/v2", Err: fmt.Errorf("connection refused")}

		toolErr := NewAPIError("Error fetching groups", wrapped)

		assert.Equal(t, KindTransport, toolErr.Kind)
	})

	t.Run("raw errors array surfaced through the http client is api", func(t *testing.T) {
		gqlErr := &GraphQLError{Raw: `[{"message":"first problem"},{"message":"second problem"}]`}
		wrapped := &url.Error{Op: "Post", URL: "https://api.monday.com/v2", Err: gqlErr}

		toolErr := NewAPIError("Error fetching groups", wrapped)

		assert.Equal(t, KindAPI, toolErr.Kind)
		assert.Equal(t, `Error fetching groups: Monday.com API error: [{"message":"first problem"},{"message":"second problem"}]`, toolErr.Error())
		assert.ErrorIs(t, toolErr, gqlErr)
	})

	t.Run("graphql errors keep the server message", func(t *testing.T) {
		toolErr := NewAPIError("Error updating item", fmt.Errorf("Column not found"))

		assert.Equal(t, KindAPI, toolErr.Kind)
		assert.Equal(t, "Error updating item: Monday.com API error: Column not found", toolErr.Error())
	})
}

func TestAsToolError(t *testing.T) {
	notFound := NewNotFoundError("No groups found on board %s.", "42")
	assert.Same(t, notFound, AsToolError(fmt.Errorf("wrapped: %w", notFound)))

	internal := AsToolError(fmt.Errorf("boom"))
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Equal(t, "unexpected error: boom", internal.Error())
}

func TestMondayErrorContext(t *testing.T) {
	t.Run("API errors can be added to context and retrieved", func(t *testing.T) {
		ctx := ContextWithMondayErrors(context.Background())

		apiErr := NewAPIError("Error fetching groups", fmt.Errorf("Internal server error"))
		require.NoError(t, RecordAPIError(ctx, apiErr))
		require.NoError(t, RecordAPIError(ctx, NewConfigError("MONDAY_TASKS_BOARD_ID is not set")))

		apiErrors, err := GetMondayAPIErrors(ctx)
		require.NoError(t, err)
		require.Len(t, apiErrors, 1)
		assert.Same(t, apiErr, apiErrors[0])
	})

	t.Run("context reuse resets collected errors", func(t *testing.T) {
		ctx := ContextWithMondayErrors(context.Background())
		require.NoError(t, RecordAPIError(ctx, NewAPIError("first", fmt.Errorf("boom"))))

		ctx = ContextWithMondayErrors(ctx)

		apiErrors, err := GetMondayAPIErrors(ctx)
		require.NoError(t, err)
		assert.Empty(t, apiErrors)
	})

	t.Run("recording without a prepared context fails", func(t *testing.T) {
		err := RecordAPIError(context.Background(), NewAPIError("first", fmt.Errorf("boom")))
		assert.Error(t, err)

		_, err = GetMondayAPIErrors(context.Background())
		assert.Error(t, err)
	})
}
