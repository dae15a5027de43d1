// Package tools is the FingerString tool set: list and task management over a
// repository.ListController.
package tools

import (
	"fmt"

	"github.com/mredig/fingerstring-mcp/internal/repository"
	"github.com/mredig/fingerstring-mcp/internal/tool"
)

// Prefix namespaces every tool name.
const Prefix = "fingerstring-"

const (
	ListAll      = Prefix + "list-all"
	ListCreate   = Prefix + "list-create"
	ListDelete   = Prefix + "list-delete"
	ListView     = Prefix + "list-view"
	TaskAdd      = Prefix + "task-add"
	TaskComplete = Prefix + "task-complete"
	TaskDelete   = Prefix + "task-delete"
	TaskEdit     = Prefix + "task-edit"
	TaskView     = Prefix + "task-view"
)

// All returns the spec of every tool, bound to store.
func All(store repository.ListController) []tool.Spec {
	return []tool.Spec{
		listAllSpec(store),
		listCreateSpec(store),
		listDeleteSpec(store),
		listViewSpec(store),
		taskAddSpec(store),
		taskCompleteSpec(store),
		taskDeleteSpec(store),
		taskEditSpec(store),
		taskViewSpec(store),
	}
}

// Register publishes every tool, bound to store, in registry.
func Register(registry *tool.Registry, store repository.ListController) error {
	if err := registry.Register(All(store)...); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	return nil
}

func request(name, subject string) string {
	if subject == "" {
		return name
	}
	return name + ": " + subject
}
