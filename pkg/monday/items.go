package monday

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
	"github.com/krsjen/monday-mcp-server/pkg/sanitize"
	"github.com/krsjen/monday-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shurcooL/graphql"
)

const (
	DefaultItemsLimit = 25
	MaxItemsLimit     = 500
)

func MyItems(getClient GetClientFn, board BoardConfig, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	board = board.WithDefaults()
	return mcp.NewTool("my-items",
			mcp.WithDescription(t("TOOL_MY_ITEMS_DESCRIPTION", "Get items assigned to the current user for a specific Monday.com board.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_MY_ITEMS_USER_TITLE", "List my items"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithNumber("limit",
				mcp.Description(fmt.Sprintf("Maximum number of items to return (default %d, max %d)", DefaultItemsLimit, MaxItemsLimit)),
			),
		), toolHandler("my-items", func(ctx context.Context, req mcp.CallToolRequest) (string, error) {
			limit := DefaultItemsLimit
			requested, ok, err := OptionalParamOK[float64](req, "limit")
			if err != nil {
				return "", mondayErrors.NewInvalidArgumentError(err.Error())
			}
			if ok {
				if requested < 1 {
					return "", mondayErrors.NewInvalidArgumentError("limit must be a positive number")
				}
				limit = int(min(requested, MaxItemsLimit))
			}

			if err := board.requireBoard(); err != nil {
				return "", err
			}

			client, err := getClient(ctx)
			if err != nil {
				return "", err
			}

			userID, err := fetchCurrentUserID(ctx, client)
			if err != nil {
				return "", apiError("Error fetching items", err)
			}
			if userID == "" {
				return "", mondayErrors.NewNotFoundError("Could not determine current user ID.")
			}

			columns, err := fetchColumns(ctx, client, board.BoardID)
			if err != nil {
				return "", apiError("Error fetching items", err)
			}

			var peopleColumn *column
			for i := range columns {
				if columns[i].Type == "people" || columns[i].Type == "person" {
					peopleColumn = &columns[i]
					break
				}
			}
			if peopleColumn == nil {
				return "", mondayErrors.NewNotFoundError("No people/person column found on board %s.", board.BoardID)
			}

			var q struct {
				ItemsPage struct {
					Items []item
				} `graphql:"items_page_by_column_values(board_id: $boardId, columns: [{column_id: $columnId, column_values: [$userId]}], limit: $limit)"`
			}
			vars := map[string]any{
				"boardId":  board.BoardID,
				"columnId": graphql.String(peopleColumn.ID),
				"userId":   graphql.String(userID),
				"limit":    graphql.Int(limit),
			}
			if err := client.Query(ctx, &q, vars); err != nil {
				return "", apiError("Error fetching items", err)
			}

			items := q.ItemsPage.Items
			if len(items) == 0 {
				return fmt.Sprintf("No items assigned to you found on board %s.", board.BoardID), nil
			}

			entries := make([]string, 0, len(items))
			for _, i := range items {
				entry := fmt.Sprintf("- %s (ID: %s)\n  Status: %s", sanitize.FilterInvisibleCharacters(i.Name), i.ID, i.columnText(board.StatusColumnID))
				if desc := strings.TrimSpace(sanitize.Sanitize(i.columnText(board.DescriptionColumnID))); desc != "" {
					entry += "\n  AI Description: " + desc
				}
				entries = append(entries, entry)
			}
			return strings.Join(entries, "\n\n"), nil
		})
}

type addTaskParams struct {
	GroupID      string         `mapstructure:"groupId"`
	ItemName     string         `mapstructure:"itemName"`
	ColumnValues map[string]any `mapstructure:"columnValues"`
}

func AddTask(getClient GetClientFn, board BoardConfig, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	board = board.WithDefaults()
	return mcp.NewTool("add-task",
			mcp.WithDescription(t("TOOL_ADD_TASK_DESCRIPTION", "Add a new task (item) to the Monday.com board. The task is assigned to the current user.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_ADD_TASK_USER_TITLE", "Add task"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("groupId",
				mcp.Required(),
				mcp.Description("The group ID to add the item to. Use get-groups to list them."),
			),
			mcp.WithString("itemName",
				mcp.Required(),
				mcp.Description("The name of the new item."),
			),
			mcp.WithObject("columnValues",
				mcp.Description("Optional object mapping column IDs to values."),
			),
		), toolHandler("add-task", func(ctx context.Context, req mcp.CallToolRequest) (string, error) {
			var params addTaskParams
			if err := decodeArgs(req, &params); err != nil {
				return "", err
			}
			if params.GroupID == "" {
				return "", mondayErrors.NewInvalidArgumentError("missing required parameter: groupId")
			}
			if params.ItemName == "" {
				return "", mondayErrors.NewInvalidArgumentError("missing required parameter: itemName")
			}

			if err := board.requireBoard(); err != nil {
				return "", err
			}

			client, err := getClient(ctx)
			if err != nil {
				return "", err
			}

			columnValues := make(map[string]any, len(params.ColumnValues)+1)
			for k, v := range params.ColumnValues {
				columnValues[k] = v
			}

			// A failed lookup only costs the assignment, the item is still created.
			userID, err := fetchCurrentUserID(ctx, client)
			switch {
			case err != nil:
				slog.Warn("could not resolve task owner, creating unassigned item", "error", err)
			case userID == "":
				return "", mondayErrors.NewNotFoundError("Could not determine current user ID.")
			default:
				columnValues[board.OwnerColumnID] = userID
			}

			var encoded *JSON
			if len(columnValues) > 0 {
				j, err := toJSON(columnValues)
				if err != nil {
					return "", mondayErrors.NewInvalidArgumentError(fmt.Sprintf("columnValues could not be encoded: %v", err))
				}
				encoded = &j
			}

			var m struct {
				CreateItem item `graphql:"create_item(board_id: $boardId, group_id: $groupId, item_name: $itemName, column_values: $columnValues)"`
			}
			vars := map[string]any{
				"boardId":      board.BoardID,
				"groupId":      graphql.String(params.GroupID),
				"itemName":     graphql.String(params.ItemName),
				"columnValues": encoded,
			}
			if err := client.Mutate(ctx, &m, vars); err != nil {
				return "", apiError("Error creating item", err)
			}
			if m.CreateItem.ID == "" {
				return "", &mondayErrors.ToolError{Kind: mondayErrors.KindAPI, Message: "Failed to create item on the board."}
			}

			return fmt.Sprintf("Created item '%s' (%s) on board %s.", m.CreateItem.Name, m.CreateItem.idInfo(), board.BoardID), nil
		})
}

type updateTaskParams struct {
	ItemID       string         `mapstructure:"itemId"`
	ColumnValues map[string]any `mapstructure:"columnValues"`
}

func UpdateTask(getClient GetClientFn, board BoardConfig, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("update-task",
			mcp.WithDescription(t("TOOL_UPDATE_TASK_DESCRIPTION", "Update a task (item) on the Monday.com board with custom column values.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_UPDATE_TASK_USER_TITLE", "Update task"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("itemId",
				mcp.Required(),
				mcp.Description("The ID of the item to update."),
			),
			mcp.WithObject("columnValues",
				mcp.Required(),
				mcp.Description("Object mapping column IDs to new values."),
			),
		), toolHandler("update-task", func(ctx context.Context, req mcp.CallToolRequest) (string, error) {
			var params updateTaskParams
			if err := decodeArgs(req, &params); err != nil {
				return "", err
			}
			if params.ItemID == "" {
				return "", mondayErrors.NewInvalidArgumentError("missing required parameter: itemId")
			}
			if params.ColumnValues == nil {
				return "", mondayErrors.NewInvalidArgumentError("missing required parameter: columnValues")
			}

			if err := board.requireBoard(); err != nil {
				return "", err
			}

			client, err := getClient(ctx)
			if err != nil {
				return "", err
			}

			updated, err := changeColumnValues(ctx, client, board.BoardID, params.ItemID, params.ColumnValues)
			if err != nil {
				return "", apiError("Error updating item", err)
			}
			if updated.ID == "" {
				return "", &mondayErrors.ToolError{Kind: mondayErrors.KindAPI, Message: "Failed to update item on the board."}
			}

			return fmt.Sprintf("Updated item '%s' (%s) on board %s.", updated.Name, updated.idInfo(), board.BoardID), nil
		})
}

func GetItemDetails(getClient GetClientFn, board BoardConfig, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get-item-details",
			mcp.WithDescription(t("TOOL_GET_ITEM_DETAILS_DESCRIPTION", "Get detailed information for a specific item including all its columns and values.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_GET_ITEM_DETAILS_USER_TITLE", "Get item details"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("itemId",
				mcp.Required(),
				mcp.Description("The ID of the item to get details for."),
			),
		), toolHandler("get-item-details", func(ctx context.Context, req mcp.CallToolRequest) (string, error) {
			itemID, err := RequiredParam[string](req, "itemId")
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

			var q struct {
				Boards []struct {
					Name    string
					Columns []column
				} `graphql:"boards(ids: $boardId)"`
				Items []struct {
					ID    string
					Name  string
					Group struct {
						ID    string
						Title string
					}
					ColumnValues []columnValue `graphql:"column_values"`
					CreatedAt    string        `graphql:"created_at"`
					UpdatedAt    string        `graphql:"updated_at"`
					Creator      struct {
						ID    string
						Name  string
						Email string
					}
				} `graphql:"items(ids: $itemId)"`
			}
			vars := map[string]any{
				"boardId": []string{board.BoardID},
				"itemId":  []string{itemID},
			}
			if err := client.Query(ctx, &q, vars); err != nil {
				return "", apiError("Error fetching item details", err)
			}
			if len(q.Items) == 0 {
				return "", mondayErrors.NewNotFoundError("No item found with ID %s on board %s.", itemID, board.BoardID)
			}

			it := q.Items[0]
			boardName := "Unknown"
			titles := map[string]column{}
			if len(q.Boards) > 0 {
				if q.Boards[0].Name != "" {
					boardName = q.Boards[0].Name
				}
				for _, c := range q.Boards[0].Columns {
					titles[c.ID] = c
				}
			}

			var b strings.Builder
			b.WriteString("Item Details:\n")
			b.WriteString("================\n")
			fmt.Fprintf(&b, "Name: %s\n", sanitize.FilterInvisibleCharacters(it.Name))
			fmt.Fprintf(&b, "ID: %s\n", it.ID)
			fmt.Fprintf(&b, "Board: %s\n", boardName)
			fmt.Fprintf(&b, "Group: %s (ID: %s)\n", orDefault(sanitize.FilterInvisibleCharacters(it.Group.Title), "No Group"), orDefault(it.Group.ID, "N/A"))
			fmt.Fprintf(&b, "Created: %s\n", formatTimestamp(it.CreatedAt))
			fmt.Fprintf(&b, "Updated: %s\n", formatTimestamp(it.UpdatedAt))
			fmt.Fprintf(&b, "Creator: %s (%s)\n\n", orDefault(it.Creator.Name, "Unknown"), orDefault(it.Creator.Email, "N/A"))
			b.WriteString("Columns and Values:\n")
			b.WriteString("==================\n")

			values := append([]columnValue(nil), it.ColumnValues...)
			title := func(cv columnValue) string {
				if c, ok := titles[cv.ID]; ok && c.Title != "" {
					return c.Title
				}
				return cv.ID
			}
			sort.SliceStable(values, func(i, j int) bool {
				return strings.ToLower(title(values[i])) < strings.ToLower(title(values[j]))
			})

			for _, cv := range values {
				colType := cv.Type
				if c, ok := titles[cv.ID]; ok && c.Type != "" {
					colType = c.Type
				}
				fmt.Fprintf(&b, "• %s (%s):\n", title(cv), colType)
				fmt.Fprintf(&b, "  - Raw Value: %s\n", orDefault(cv.Value, "(no value)"))
				fmt.Fprintf(&b, "  - Text Value: %s\n", orDefault(cellText(colType, cv.Text), "(no text)"))
			}

			return b.String(), nil
		})
}

// changeColumnValues applies values to itemID and returns the updated item.
func changeColumnValues(ctx context.Context, client *graphql.Client, boardID, itemID string, values map[string]any) (item, error) {
	encoded, err := toJSON(values)
	if err != nil {
		return item{}, mondayErrors.NewInvalidArgumentError(fmt.Sprintf("columnValues could not be encoded: %v", err))
	}

	var m struct {
		ChangeMultipleColumnValues item `graphql:"change_multiple_column_values(board_id: $boardId, item_id: $itemId, column_values: $columnValues)"`
	}
	vars := map[string]any{
		"boardId":      boardID,
		"itemId":       itemID,
		"columnValues": encoded,
	}
	if err := client.Mutate(ctx, &m, vars); err != nil {
		return item{}, err
	}
	return m.ChangeMultipleColumnValues, nil
}

// decodeArgs decodes the tool arguments into params. Numbers are accepted
// where strings are expected since ids are often sent unquoted.
func decodeArgs(req mcp.CallToolRequest, params any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           params,
	})
	if err != nil {
		return mondayErrors.NewInternalError("failed to build argument decoder", err)
	}
	if err := decoder.Decode(req.GetArguments()); err != nil {
		return mondayErrors.NewInvalidArgumentError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

// cellText cleans a column's text for display. Only long text columns carry
// HTML; everything else is shown as typed.
func cellText(colType, text string) string {
	if colType == "long_text" {
		return sanitize.Sanitize(text)
	}
	return sanitize.FilterInvisibleCharacters(text)
}

func formatTimestamp(s string) string {
	if s == "" {
		return "Unknown"
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return ts.UTC().Format("2006-01-02 15:04:05 UTC")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
