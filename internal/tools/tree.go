package tools

import (
	"context"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/mredig/fingerstring-mcp/internal/repository"
	"github.com/mredig/fingerstring-mcp/internal/tool"
)

// TaskNode is one task in a rendered list tree.
type TaskNode struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	IsComplete bool       `json:"isComplete"`
	HasNote    bool       `json:"hasNote"`
	Subtasks   []TaskNode `json:"subtasks,omitempty"`
}

// treeBuilder walks the task hierarchy depth first, one stream at a time.
// Completed tasks are left out at every level unless showCompleted is set,
// and a left out task is never expanded.
type treeBuilder struct {
	store         repository.ListController
	showCompleted bool
}

// BuildTree assembles the task tree below parent.
func BuildTree(ctx context.Context, store repository.ListController, parent domain.TaskParent, showCompleted bool) ([]TaskNode, error) {
	nodes, err := treeBuilder{store: store, showCompleted: showCompleted}.build(ctx, parent)
	if err != nil {
		return nil, err
	}
	if nodes == nil {
		nodes = []TaskNode{}
	}
	return nodes, nil
}

func (b treeBuilder) build(ctx context.Context, parent domain.TaskParent) ([]TaskNode, error) {
	cursor, err := tool.Wrap(tool.ErrorFrom, func() (repository.TaskCursor, error) {
		return b.store.StreamTasks(ctx, parent)
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var nodes []TaskNode
	for cursor.Next(ctx) {
		task := cursor.Task()
		if task.IsComplete && !b.showCompleted {
			continue
		}

		node := TaskNode{
			ID:         task.HashID,
			Label:      task.Label,
			IsComplete: task.IsComplete,
			HasNote:    task.Note != nil,
		}
		if task.HasSubtasks {
			subtasks, err := b.build(ctx, domain.TaskParentOf(task.HashID))
			if err != nil {
				return nil, err
			}
			node.Subtasks = subtasks
		}
		nodes = append(nodes, node)
	}

	if err := tool.WrapErr(tool.ErrorFrom, cursor.Err); err != nil {
		return nil, err
	}
	return nodes, nil
}
