package tools

import (
	"context"
	"fmt"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/mredig/fingerstring-mcp/internal/repository"
	"github.com/mredig/fingerstring-mcp/internal/schema"
	"github.com/mredig/fingerstring-mcp/internal/tool"
)

const (
	querySlug   = "slug"
	queryHashID = "hashID"
)

// CreatedTask is the output of fingerstring-task-add.
type CreatedTask struct {
	Status string  `json:"status"`
	Label  string  `json:"label"`
	HashID string  `json:"hashID"`
	Note   *string `json:"note,omitempty"`
}

// TaskDetail is a single task with its note.
type TaskDetail struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	IsComplete bool    `json:"isComplete"`
	Note       *string `json:"note,omitempty"`
}

func detailOf(task *domain.Task) TaskDetail {
	return TaskDetail{
		ID:         task.HashID,
		Label:      task.Label,
		IsComplete: task.IsComplete,
		Note:       task.Note,
	}
}

var hashIDField = schema.String{
	Required:  true,
	MinLength: schema.Ptr(domain.HashIDLength),
	MaxLength: schema.Ptr(domain.HashIDLength),
}

func hashIDSchema(description string) schema.String {
	field := hashIDField
	field.Description = description
	return field
}

func findTask(ctx context.Context, store repository.ListController, hashID string) (*domain.Task, error) {
	return tool.Wrap(tool.ErrorFrom, func() (*domain.Task, error) {
		return store.TaskByHashID(ctx, hashID)
	})
}

type taskAdd struct {
	store     repository.ListController
	query     string
	queryType string
	label     string
	note      *string
}

func taskAddSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name: TaskAdd,
		Description: "FingerString: Add a task to a list or as a subtask. Use notes to add context and " +
			"anything that might be helpful later; err on the side of including too much detail.",
		Schema: schema.Properties{
			"query": schema.String{
				Description: "Slug of the target list or hash ID of the parent task",
				Required:    true,
			},
			"queryType": schema.String{
				Description: "The type of the query. [slug|hashID]",
				Required:    true,
				Enum:        []string{querySlug, queryHashID},
			},
			"label": schema.String{Description: "Label for the task", Required: true},
			"note":  schema.String{Description: "Optional note for the task"},
		},
		OutputType: CreatedTask{},
		New: func(args tool.Arguments) (tool.Tool, error) {
			query, err := args.RequireString("query")
			if err != nil {
				return nil, err
			}
			queryType, err := args.Enum("queryType", querySlug, queryHashID)
			if err != nil {
				return nil, err
			}
			label, err := args.RequireString("label")
			if err != nil {
				return nil, err
			}
			return &taskAdd{
				store:     store,
				query:     query,
				queryType: queryType,
				label:     label,
				note:      args.OptionalString("note"),
			}, nil
		},
	}
}

func (t *taskAdd) parent(ctx context.Context) (domain.TaskParent, error) {
	if t.queryType == queryHashID {
		return domain.TaskParentOf(t.query), nil
	}
	list, err := t.store.ListBySlug(ctx, t.query)
	if err != nil {
		return domain.TaskParent{}, err
	}
	return domain.ListParent(list.ID), nil
}

func (t *taskAdd) Call(ctx context.Context) (*tool.Result, error) {
	task, err := tool.Wrap(tool.ErrorFrom, func() (*domain.Task, error) {
		parent, err := t.parent(ctx)
		if err != nil {
			return nil, err
		}
		return t.store.CreateTask(ctx, domain.NewTask{
			Parent: parent,
			Label:  t.label,
			Note:   t.note,
		})
	})
	if err != nil {
		return nil, err
	}

	return tool.Output(request(TaskAdd, t.queryType+" "+t.query), nil, CreatedTask{
		Status: "created",
		Label:  task.Label,
		HashID: task.HashID,
		Note:   task.Note,
	}), nil
}

type taskComplete struct {
	store  repository.ListController
	hashID string
	mark   bool
}

func taskCompleteSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name:        TaskComplete,
		Description: "FingerString: Mark or unmark a task as completed",
		Schema: schema.Properties{
			"hashID": hashIDSchema("Hash ID of the task"),
			"mark": schema.Boolean{
				Description: "Whether to mark as completed",
				Default:     schema.Ptr(true),
			},
		},
		Annotations: tool.Annotations{Idempotent: true},
		New: func(args tool.Arguments) (tool.Tool, error) {
			hashID, err := args.RequireConforming("hashID", hashIDField)
			if err != nil {
				return nil, err
			}
			return &taskComplete{
				store:  store,
				hashID: hashID,
				mark:   args.BoolOr("mark", true),
			}, nil
		},
	}
}

func (t *taskComplete) Call(ctx context.Context) (*tool.Result, error) {
	task, err := findTask(ctx, t.store, t.hashID)
	if err != nil {
		return nil, err
	}

	updated, err := tool.Wrap(tool.ErrorFrom, func() (*domain.Task, error) {
		return t.store.UpdateTask(ctx, task.ID, domain.TaskUpdate{IsComplete: domain.ChangeTo(t.mark)})
	})
	if err != nil {
		return nil, err
	}

	state := "incomplete"
	if updated.IsComplete {
		state = "completed"
	}
	return tool.Output(request(TaskComplete, t.hashID), nil,
		fmt.Sprintf("Marked task [%s] (%s) as %s", updated.HashID, updated.Label, state)), nil
}

type taskDelete struct {
	store  repository.ListController
	hashID string
}

func taskDeleteSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name:        TaskDelete,
		Description: "FingerString: Delete a task and all of its subtasks",
		Schema: schema.Properties{
			"hashID": hashIDSchema("Hash ID of the task to delete"),
		},
		Annotations: tool.Annotations{Destructive: true},
		New: func(args tool.Arguments) (tool.Tool, error) {
			hashID, err := args.RequireConforming("hashID", hashIDField)
			if err != nil {
				return nil, err
			}
			return &taskDelete{store: store, hashID: hashID}, nil
		},
	}
}

func (t *taskDelete) Call(ctx context.Context) (*tool.Result, error) {
	task, err := findTask(ctx, t.store, t.hashID)
	if err != nil {
		return nil, err
	}

	err = tool.WrapErr(tool.ErrorFrom, func() error {
		return t.store.DeleteTask(ctx, task.ID)
	})
	if err != nil {
		return nil, err
	}
	return tool.Output(request(TaskDelete, t.hashID), nil,
		fmt.Sprintf("Deleted %s [%s]", task.Label, task.HashID)), nil
}

type taskEdit struct {
	store  repository.ListController
	hashID string
	label  *string
	note   *string
}

func taskEditSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name:        TaskEdit,
		Description: "FingerString: Edit a task's attributes like label or note",
		Schema: schema.Properties{
			"hashID": hashIDSchema("Hash ID of the task to edit"),
			"label":  schema.String{Description: "New label for the task", MinLength: schema.Ptr(1)},
			"note":   schema.String{Description: "New note for the task"},
		},
		OutputType:  TaskDetail{},
		Annotations: tool.Annotations{Idempotent: true},
		New: func(args tool.Arguments) (tool.Tool, error) {
			hashID, err := args.RequireConforming("hashID", hashIDField)
			if err != nil {
				return nil, err
			}
			label := args.OptionalString("label")
			if label != nil && *label == "" {
				return nil, tool.InvalidArgument("label", `""`, "must not be empty")
			}
			return &taskEdit{
				store:  store,
				hashID: hashID,
				label:  label,
				note:   args.OptionalString("note"),
			}, nil
		},
	}
}

func (t *taskEdit) Call(ctx context.Context) (*tool.Result, error) {
	task, err := findTask(ctx, t.store, t.hashID)
	if err != nil {
		return nil, err
	}

	updated, err := tool.Wrap(tool.ErrorFrom, func() (*domain.Task, error) {
		return t.store.UpdateTask(ctx, task.ID, domain.TaskUpdate{
			Label: domain.ChangeFrom(t.label),
			Note:  domain.ChangeFrom(t.note),
		})
	})
	if err != nil {
		return nil, err
	}
	return tool.Output(request(TaskEdit, t.hashID), nil, detailOf(updated)), nil
}

type taskView struct {
	store  repository.ListController
	hashID string
}

func taskViewSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name:        TaskView,
		Description: "FingerString: View a task with all its details including note",
		Schema: schema.Properties{
			"hashID": hashIDSchema("Hash ID of the task to view"),
		},
		OutputType:  TaskDetail{},
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		New: func(args tool.Arguments) (tool.Tool, error) {
			hashID, err := args.RequireConforming("hashID", hashIDField)
			if err != nil {
				return nil, err
			}
			return &taskView{store: store, hashID: hashID}, nil
		},
	}
}

func (t *taskView) Call(ctx context.Context) (*tool.Result, error) {
	task, err := findTask(ctx, t.store, t.hashID)
	if err != nil {
		return nil, err
	}
	return tool.Output(request(TaskView, t.hashID), nil, detailOf(task)), nil
}
