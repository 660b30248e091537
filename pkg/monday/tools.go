package monday

import (
	"github.com/krsjen/monday-mcp-server/pkg/toolsets"
	"github.com/krsjen/monday-mcp-server/pkg/translations"
)

var DefaultTools = []string{"all"}

func DefaultToolsetGroup(readOnly bool, getClient GetClientFn, board BoardConfig, t translations.TranslationHelperFunc) *toolsets.ToolsetGroup {
	tsg := toolsets.NewToolsetGroup(readOnly)

	items := toolsets.NewToolset("items", "Monday.com items: list, inspect, create and update tasks").
		AddReadTools(
			toolsets.NewServerTool(MyItems(getClient, board, t)),
			toolsets.NewServerTool(GetItemDetails(getClient, board, t)),
		).
		AddWriteTools(
			toolsets.NewServerTool(AddTask(getClient, board, t)),
			toolsets.NewServerTool(UpdateTaskStatus(getClient, board, t)),
			toolsets.NewServerTool(UpdateTask(getClient, board, t)),
		).
		AddPrompts(
			toolsets.NewServerPrompt(ManageBoardTasksPrompt(t)),
		)

	groups := toolsets.NewToolset("groups", "Monday.com groups: list the sections of the board").
		AddReadTools(
			toolsets.NewServerTool(GetGroups(getClient, board, t)),
		)

	tsg.AddToolset(items)
	tsg.AddToolset(groups)

	return tsg
}
