package mondaymcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/krsjen/monday-mcp-server/internal/mondaymock"
	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
	"github.com/krsjen/monday-mcp-server/pkg/monday"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func call(t *testing.T, s *server.MCPServer, message string) gjson.Result {
	t.Helper()
	resp := s.HandleMessage(context.Background(), json.RawMessage(message))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	return gjson.ParseBytes(raw)
}

func listTools(t *testing.T, s *server.MCPServer) []string {
	t.Helper()
	var names []string
	for _, name := range call(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`).Get("result.tools.#.name").Array() {
		names = append(names, name.String())
	}
	return names
}

func TestNewMCPServer(t *testing.T) {
	tests := []struct {
		name     string
		cfg      MCPServerConfig
		expected []string
	}{
		{
			name: "all toolsets by default",
			cfg:  MCPServerConfig{Version: "test", APIKey: "key", Board: monday.BoardConfig{BoardID: "123"}},
			expected: []string{
				"my-items", "get-item-details", "add-task", "update-task-status", "update-task", "get-groups",
			},
		},
		{
			name:     "read-only",
			cfg:      MCPServerConfig{Version: "test", ReadOnly: true},
			expected: []string{"my-items", "get-item-details", "get-groups"},
		},
		{
			name:     "single toolset",
			cfg:      MCPServerConfig{Version: "test", EnabledToolsets: []string{"groups"}},
			expected: []string{"get-groups"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewMCPServer(tc.cfg)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.expected, listTools(t, s))
		})
	}

	t.Run("unknown toolset", func(t *testing.T) {
		_, err := NewMCPServer(MCPServerConfig{EnabledToolsets: []string{"boards"}})
		assert.Error(t, err)
	})
}

func TestNewMCPServer_ToolCall(t *testing.T) {
	transport := mondaymock.NewTransport(mondaymock.Matcher{
		Fragment: "groups{",
		Response: mondaymock.DataResponse(map[string]any{
			"boards": []any{map[string]any{"groups": []any{
				map[string]any{"id": "topics", "title": "This sprint", "color": "#579bfc", "position": "1"},
			}}},
		}),
	})
	s, err := NewMCPServer(MCPServerConfig{
		Version:   "test",
		APIKey:    "key",
		APIURL:    "https://api.monday.test/v2",
		Board:     monday.BoardConfig{BoardID: "123"},
		Transport: transport,
	})
	require.NoError(t, err)

	resp := call(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get-groups","arguments":{}}}`)
	assert.False(t, resp.Get("result.isError").Bool())
	assert.Equal(t, "Groups on board 123:\n\n- This sprint (ID: topics, Color: #579bfc)", resp.Get("result.content.0.text").String())

	requests := transport.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "key", requests[0].Header.Get("Authorization"))
	assert.Equal(t, "monday-mcp-server/test", requests[0].Header.Get("User-Agent"))
}

func TestNewMCPServer_Prompt(t *testing.T) {
	s, err := NewMCPServer(MCPServerConfig{Version: "test"})
	require.NoError(t, err)

	resp := call(t, s, `{"jsonrpc":"2.0","id":3,"method":"prompts/list"}`)
	assert.Equal(t, "ManageBoardTasks", resp.Get("result.prompts.0.name").String())
}

func Test_collectAPIErrors(t *testing.T) {
	var seen []*mondayErrors.ToolError
	handler := collectAPIErrors(func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		toolErr := mondayErrors.NewAPIError("Error fetching groups", errors.New("Board not found"))
		require.NoError(t, mondayErrors.RecordAPIError(ctx, toolErr))
		seen, _ = mondayErrors.GetMondayAPIErrors(ctx)
		return mcp.NewToolResultError(toolErr.Error()), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	require.Len(t, seen, 1)
	assert.Equal(t, mondayErrors.KindAPI, seen[0].Kind)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for input, expected := range tests {
		assert.Equal(t, expected, ParseLogLevel(input), input)
	}
}
