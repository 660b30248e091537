package monday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
	"github.com/krsjen/monday-mcp-server/pkg/status"
	"github.com/krsjen/monday-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func UpdateTaskStatus(getClient GetClientFn, board BoardConfig, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("update-task-status",
			mcp.WithDescription(t("TOOL_UPDATE_TASK_STATUS_DESCRIPTION", "Update the status of a task (item) on the Monday.com board.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_UPDATE_TASK_STATUS_USER_TITLE", "Update task status"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("itemId",
				mcp.Required(),
				mcp.Description("The ID of the item to update."),
			),
			mcp.WithString("newStatus",
				mcp.Required(),
				mcp.Description("The new status (e.g., 'in progress', 'in review', 'done')."),
			),
		), toolHandler("update-task-status", func(ctx context.Context, req mcp.CallToolRequest) (string, error) {
			itemID, err := RequiredParam[string](req, "itemId")
			if err != nil {
				return "", mondayErrors.NewInvalidArgumentError(err.Error())
			}
			newStatus, err := RequiredParam[string](req, "newStatus")
			if err != nil {
				return "", mondayErrors.NewInvalidArgumentError(err.Error())
			}

			if err := board.requireBoard(); err != nil {
				return "", err
			}

			client, err := getClient(ctx)
			if err != nil {
				return "", err
			}

			columns, err := fetchColumns(ctx, client, board.BoardID)
			if err != nil {
				return "", apiError("Error updating item status", err)
			}

			statusColumn, ok := pickStatusColumn(columns)
			if !ok {
				return "", mondayErrors.NewNotFoundError("No status columns found on board %s.", board.BoardID)
			}

			settings := status.ParseSettings(statusColumn.SettingsStr)
			if settings.Shape == status.ShapeUnknown && statusColumn.SettingsStr != "" {
				slog.Warn("unrecognised status column settings", "column", statusColumn.ID)
			}

			match, err := status.Resolve(settings.Options(), newStatus)
			if err != nil {
				var noMatch *status.NoMatchError
				if errors.As(err, &noMatch) {
					return "", mondayErrors.NewNotFoundError("Could not find status \"%s\" in column \"%s\". Available statuses: %s",
						newStatus, statusColumn.Title, noMatch.AvailableList())
				}
				return "", mondayErrors.NewInternalError("Error updating item status", err)
			}
			slog.Debug("resolved status", "query", newStatus, "label", match.Option.Name, "strategy", string(match.Strategy))

			values := map[string]any{
				statusColumn.ID: statusColumnValue(match.Option),
			}
			updated, err := changeColumnValues(ctx, client, board.BoardID, itemID, values)
			if err != nil {
				return "", apiError("Error updating item status", err)
			}
			if updated.ID == "" {
				return "", &mondayErrors.ToolError{Kind: mondayErrors.KindAPI, Message: "Failed to update item status on the board."}
			}

			return fmt.Sprintf("Updated item '%s' (%s) status to \"%s\" on board %s.",
				updated.Name, updated.idInfo(), match.Option.Name, board.BoardID), nil
		})
}

// pickStatusColumn prefers a status column titled "status", falling back to
// the first status column of the board.
func pickStatusColumn(columns []column) (column, bool) {
	var candidates []column
	for _, c := range columns {
		if c.Type == "color" || c.Type == "status" {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return column{}, false
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.Title), "status") {
			return c, true
		}
	}
	return candidates[0], true
}

// statusColumnValue addresses the label by index when the board gave it an
// integer id, by label text otherwise.
func statusColumnValue(opt status.Option) map[string]any {
	if index, err := strconv.Atoi(opt.ID); err == nil {
		return map[string]any{"index": index}
	}
	return map[string]any{"label": opt.Name}
}
