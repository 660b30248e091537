package monday

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
	"github.com/krsjen/monday-mcp-server/pkg/sanitize"
	"github.com/krsjen/monday-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type group struct {
	ID       string
	Title    string
	Color    string
	Position string
}

// position parses the group's position; unparseable positions sort last.
func (g group) position() float64 {
	p, err := strconv.ParseFloat(g.Position, 64)
	if err != nil {
		return math.Inf(1)
	}
	return p
}

func GetGroups(getClient GetClientFn, board BoardConfig, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get-groups",
			mcp.WithDescription(t("TOOL_GET_GROUPS_DESCRIPTION", "Get all groups from a Monday.com board.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_GET_GROUPS_USER_TITLE", "Get groups"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
		), toolHandler("get-groups", func(ctx context.Context, _ mcp.CallToolRequest) (string, error) {
			if err := board.requireBoard(); err != nil {
				return "", err
			}

			client, err := getClient(ctx)
			if err != nil {
				return "", err
			}

			var q struct {
				Boards []struct {
					Groups []group
				} `graphql:"boards(ids: $boardId)"`
			}
			vars := map[string]any{
				"boardId": []string{board.BoardID},
			}
			if err := client.Query(ctx, &q, vars); err != nil {
				return "", apiError("Error fetching groups", err)
			}
			if len(q.Boards) == 0 {
				return "", mondayErrors.NewNotFoundError("Could not fetch groups for board %s.", board.BoardID)
			}

			groups := append([]group(nil), q.Boards[0].Groups...)
			if len(groups) == 0 {
				return "", mondayErrors.NewNotFoundError("No groups found on board %s.", board.BoardID)
			}
			sort.SliceStable(groups, func(i, j int) bool {
				return groups[i].position() < groups[j].position()
			})

			lines := make([]string, 0, len(groups))
			for _, g := range groups {
				lines = append(lines, fmt.Sprintf("- %s (ID: %s, Color: %s)", sanitize.FilterInvisibleCharacters(g.Title), g.ID, g.Color))
			}
			return fmt.Sprintf("Groups on board %s:\n\n%s", board.BoardID, strings.Join(lines, "\n")), nil
		})
}
