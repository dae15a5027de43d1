package repository

import (
	"context"

	"github.com/mredig/fingerstring-mcp/internal/domain"
)

// ListController is the list/task store consumed by the tools. Implementations
// must be safe for concurrent use by multiple in-flight calls.
type ListController interface {
	// Lists
	AllLists(ctx context.Context) ([]domain.List, error)
	ListBySlug(ctx context.Context, slug string) (*domain.List, error)
	CreateList(ctx context.Context, list domain.NewList) (*domain.List, error)
	DeleteList(ctx context.Context, id uint) error

	// Tasks
	TaskByHashID(ctx context.Context, hashID string) (*domain.Task, error)
	CreateTask(ctx context.Context, task domain.NewTask) (*domain.Task, error)
	UpdateTask(ctx context.Context, id uint, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, id uint) error

	// StreamTasks opens a cursor over the direct children of parent, in the
	// order they were added.
	StreamTasks(ctx context.Context, parent domain.TaskParent) (TaskCursor, error)
}

// TaskCursor is a pull-based stream of (key, task) pairs. Callers must call
// Close when done, and check Err once Next returns false.
type TaskCursor interface {
	Next(ctx context.Context) bool
	Key() string
	Task() domain.Task
	Err() error
	Close() error
}
