package monday

import (
	"context"
	"fmt"

	"github.com/krsjen/monday-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func ManageBoardTasksPrompt(t translations.TranslationHelperFunc) (prompt mcp.Prompt, handler server.PromptHandlerFunc) {
	return mcp.NewPrompt("ManageBoardTasks",
			mcp.WithPromptDescription(t("PROMPT_MANAGE_BOARD_TASKS_DESCRIPTION", "Guide for working with tasks on the configured Monday.com board.")),
			mcp.WithArgument("task", mcp.ArgumentDescription("What you want to do with your tasks")),
		), func(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			task := request.Params.Arguments["task"]

			messages := []mcp.PromptMessage{
				{
					Role: mcp.RoleUser,
					Content: mcp.NewTextContent(`System guide: Monday.com board tasks.

Available tools:

Read-only tools:
- my-items: items assigned to you, with their status
- get-groups: groups (sections) of the board with their IDs
- get-item-details: every column value of a single item

Write tools:
- add-task: create an item in a group, assigned to you
- update-task-status: move an item to another status by name
- update-task: set arbitrary column values by column ID

Core rules:
- Call get-groups before add-task; groupId must be an ID it returned, never a title.
- update-task-status accepts informal names ("in progress", "blocked", "done"); it maps them onto the board's labels and lists the labels when nothing fits. Retry with one of the listed labels.
- Use get-item-details to discover column IDs before update-task.
- Item IDs are the numeric IDs printed as "ID: <n>".`),
				},
			}
			if task != "" {
				messages = append(messages, mcp.PromptMessage{
					Role:    mcp.RoleUser,
					Content: mcp.NewTextContent(fmt.Sprintf("Task: %s", task)),
				})
			}
			return &mcp.GetPromptResult{
				Description: "Monday.com board task management guide",
				Messages:    messages,
			}, nil
		}
}
