package monday

import (
	"context"
	"log/slog"

	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolFunc is a tool body: the text on success, a *errors.ToolError on
// failure.
type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (string, error)

// toolHandler turns a toolFunc into an MCP handler. This is the only place
// where results become the text envelope the protocol expects.
func toolHandler(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := fn(ctx, req)
		if err == nil {
			return mcp.NewToolResultText(text), nil
		}

		toolErr := mondayErrors.AsToolError(err)
		_ = mondayErrors.RecordAPIError(ctx, toolErr)

		logger := slog.Default().With("tool", name, "kind", toolErr.Kind.String())
		switch toolErr.Kind {
		case mondayErrors.KindAPI, mondayErrors.KindTransport, mondayErrors.KindInternal:
			logger.Error("tool call failed", "error", toolErr)
		default:
			logger.Info("tool call rejected", "reason", toolErr.Message)
		}

		return mcp.NewToolResultError(toolErr.Error()), nil
	}
}
