package monday

import (
	"net/http"
	"testing"

	"github.com/krsjen/monday-mcp-server/internal/mondaymock"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

var testBoard = BoardConfig{BoardID: "123"}

// createMCPRequest is a helper function to create a MCP request with the given arguments.
func createMCPRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// getTextResult is a helper function that returns a text result from a tool call.
func getTextResult(t *testing.T, result *mcp.CallToolResult) mcp.TextContent {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected content to be of type TextContent")
	require.Equal(t, "text", textContent.Type)
	return textContent
}

func getErrorResult(t *testing.T, result *mcp.CallToolResult) mcp.TextContent {
	t.Helper()
	require.NotNil(t, result)
	require.True(t, result.IsError, "expected tool call result to be an error")
	return getTextResult(t, result)
}

func stubGetClientFn(transport http.RoundTripper) GetClientFn {
	return NewClientFn(ClientConfig{
		APIKey:    testAPIKey,
		APIURL:    "https://api.monday.test/v2",
		Transport: transport,
	})
}

var (
	meResponse = mondaymock.Matcher{
		Fragment: "me{id}",
		Response: mondaymock.DataResponse(map[string]any{"me": map[string]any{"id": "42"}}),
	}
	noMeResponse = mondaymock.Matcher{
		Fragment: "me{id}",
		Response: mondaymock.DataResponse(map[string]any{"me": nil}),
	}
)

func boardColumnsResponse(columns ...map[string]any) mondaymock.Matcher {
	cols := make([]any, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, c)
	}
	return mondaymock.Matcher{
		Fragment:  "columns{",
		Variables: map[string]any{"boardId": []string{"123"}},
		Response: mondaymock.DataResponse(map[string]any{
			"boards": []any{map[string]any{"columns": cols}},
		}),
	}
}

func col(id, title, typ, settings string) map[string]any {
	return map[string]any{"id": id, "title": title, "type": typ, "settings_str": settings}
}

func itemPayload(id, name string, values ...map[string]any) map[string]any {
	cvs := make([]any, 0, len(values))
	for _, v := range values {
		cvs = append(cvs, v)
	}
	return map[string]any{"id": id, "name": name, "column_values": cvs}
}

func colValue(id, typ string, value any, text string) map[string]any {
	return map[string]any{"id": id, "type": typ, "value": value, "text": text}
}
