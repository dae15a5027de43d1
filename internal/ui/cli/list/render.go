package list

import (
	"fmt"
	"io"
	"strings"

	"github.com/mredig/fingerstring-mcp/internal/tools"
	"github.com/mredig/fingerstring-mcp/internal/ui/theme"
)

// renderTree writes a list and its tasks as an indented tree.
func renderTree(w io.Writer, t *theme.Theme, tree *tools.ListTree) {
	fmt.Fprintln(w, t.TitleStyle.Render(tree.Title))
	if tree.Description != nil && *tree.Description != "" {
		fmt.Fprintln(w, t.DescriptionStyle.Render(*tree.Description))
	}
	if len(tree.Tasks) == 0 {
		fmt.Fprintln(w, t.DescriptionStyle.Render("(no tasks)"))
		return
	}
	renderNodes(w, t, tree.Tasks, "")
}

func renderNodes(w io.Writer, t *theme.Theme, nodes []tools.TaskNode, prefix string) {
	for i, node := range nodes {
		last := i == len(nodes)-1

		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}

		fmt.Fprintln(w, t.BranchStyle.Render(prefix+branch)+renderNode(t, node))
		if len(node.Subtasks) > 0 {
			renderNodes(w, t, node.Subtasks, prefix+indent)
		}
	}
}

func renderNode(t *theme.Theme, node tools.TaskNode) string {
	var b strings.Builder
	if node.IsComplete {
		b.WriteString(t.DoneStyle.Render("[x] " + node.Label))
	} else {
		b.WriteString(t.OpenStyle.Render("[ ] " + node.Label))
	}
	b.WriteString(" ")
	b.WriteString(t.HashStyle.Render(node.ID))
	if node.HasNote {
		b.WriteString(" ")
		b.WriteString(t.NoteStyle.Render("(note)"))
	}
	return b.String()
}
