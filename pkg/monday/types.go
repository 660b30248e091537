package monday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
	"github.com/shurcooL/graphql"
)

// JSON is the Monday.com JSON scalar. Column values travel as JSON encoded
// strings.
type JSON string

func toJSON(v map[string]any) (JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return JSON(b), nil
}

type column struct {
	ID          string
	Title       string
	Type        string
	SettingsStr string `graphql:"settings_str"`
}

type columnValue struct {
	ID    string
	Type  string
	Value string
	Text  string
}

type item struct {
	ID           string
	Name         string
	ColumnValues []columnValue `graphql:"column_values"`
}

func (i item) columnText(columnID string) string {
	for _, cv := range i.ColumnValues {
		if cv.ID == columnID {
			return cv.Text
		}
	}
	return ""
}

// idInfo renders the numeric id plus the human readable item id column
// when the board has one.
func (i item) idInfo() string {
	for _, cv := range i.ColumnValues {
		if cv.Type == "item_id" && cv.Text != "" {
			return fmt.Sprintf("ID: %s, Item ID: %s", i.ID, cv.Text)
		}
	}
	return fmt.Sprintf("ID: %s", i.ID)
}

// fetchCurrentUserID returns the id of the user owning the API key. An
// empty id with a nil error means the API answered without one.
func fetchCurrentUserID(ctx context.Context, client *graphql.Client) (string, error) {
	var q struct {
		Me struct {
			ID string
		}
	}
	if err := client.Query(ctx, &q, nil); err != nil {
		return "", err
	}
	return q.Me.ID, nil
}

// fetchColumns lists the columns of boardID. A board the API does not
// return is reported as not found.
func fetchColumns(ctx context.Context, client *graphql.Client, boardID string) ([]column, error) {
	var q struct {
		Boards []struct {
			Columns []column
		} `graphql:"boards(ids: $boardId)"`
	}
	vars := map[string]any{
		"boardId": []string{boardID},
	}
	if err := client.Query(ctx, &q, vars); err != nil {
		return nil, err
	}
	if len(q.Boards) == 0 {
		return nil, mondayErrors.NewNotFoundError("Could not fetch columns for board %s.", boardID)
	}
	return q.Boards[0].Columns, nil
}

// apiError keeps tool errors produced along the way and classifies
// everything else as a Monday.com failure.
func apiError(message string, err error) error {
	var toolErr *mondayErrors.ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}
	return mondayErrors.NewAPIError(message, err)
}
