package monday

import (
	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
)

const (
	DefaultStatusColumnID      = "task_status"
	DefaultDescriptionColumnID = "long_text_mkqr330y"
	DefaultOwnerColumnID       = "task_owner"
)

// BoardConfig identifies the board every tool works against and the
// board-specific columns some tools read or write.
type BoardConfig struct {
	BoardID string
	// StatusColumnID is the column shown as "Status" by my-items.
	StatusColumnID string
	// DescriptionColumnID is the long text column shown as "AI Description".
	DescriptionColumnID string
	// OwnerColumnID is the people column add-task assigns the caller to.
	OwnerColumnID string
}

// WithDefaults fills unset column ids.
func (b BoardConfig) WithDefaults() BoardConfig {
	if b.StatusColumnID == "" {
		b.StatusColumnID = DefaultStatusColumnID
	}
	if b.DescriptionColumnID == "" {
		b.DescriptionColumnID = DefaultDescriptionColumnID
	}
	if b.OwnerColumnID == "" {
		b.OwnerColumnID = DefaultOwnerColumnID
	}
	return b
}

func (b BoardConfig) requireBoard() error {
	if b.BoardID == "" {
		return mondayErrors.NewConfigError("MONDAY_TASKS_BOARD_ID is not set")
	}
	return nil
}
