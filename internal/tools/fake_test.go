package tools

import (
	"context"
	"fmt"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/mredig/fingerstring-mcp/internal/repository"
)

// fakeStore serves a fixed task hierarchy and can fail the stream of one
// parent.
type fakeStore struct {
	repository.ListController

	children map[string][]domain.Task // keyed by TaskParent.String()
	failOn   string
	failErr  error
	opened   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{children: make(map[string][]domain.Task)}
}

func (f *fakeStore) add(parent domain.TaskParent, hash, label string, complete bool) {
	key := parent.String()
	f.children[key] = append(f.children[key], domain.Task{HashID: hash, Label: label, IsComplete: complete})

	if parentHash, ok := parent.Task(); ok {
		f.markParent(parentHash)
	}
}

func (f *fakeStore) markParent(hash string) {
	for key, tasks := range f.children {
		for i := range tasks {
			if tasks[i].HashID == hash {
				f.children[key][i].HasSubtasks = true
			}
		}
	}
}

func (f *fakeStore) StreamTasks(ctx context.Context, parent domain.TaskParent) (repository.TaskCursor, error) {
	key := parent.String()
	f.opened = append(f.opened, key)
	return &fakeCursor{tasks: f.children[key], failErr: f.errFor(key)}, nil
}

func (f *fakeStore) errFor(key string) error {
	if key == f.failOn {
		return f.failErr
	}
	return nil
}

type fakeCursor struct {
	tasks   []domain.Task
	index   int
	current domain.Task
	failErr error
	err     error
}

func (c *fakeCursor) Next(context.Context) bool {
	if c.index >= len(c.tasks) {
		c.err = c.failErr
		return false
	}
	c.current = c.tasks[c.index]
	c.index++
	return true
}

func (c *fakeCursor) Key() string       { return c.current.HashID }
func (c *fakeCursor) Task() domain.Task { return c.current }
func (c *fakeCursor) Err() error        { return c.err }
func (c *fakeCursor) Close() error      { return nil }

func hash(n int) string {
	return fmt.Sprintf("%010d", n)
}
