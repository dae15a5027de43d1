package sqlite

import (
	"context"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/mredig/fingerstring-mcp/internal/repository"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (r *listRepo) StreamTasks(ctx context.Context, parent domain.TaskParent) (repository.TaskCursor, error) {
	var scope func(*gorm.DB) *gorm.DB

	if hashID, ok := parent.Task(); ok {
		parentTask, err := taskByHashID(r.db.WithContext(ctx), hashID)
		if err != nil {
			return nil, err
		}
		scope = func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_task_id = ?", parentTask.ID)
		}
	} else {
		listID, _ := parent.List()
		scope = func(db *gorm.DB) *gorm.DB {
			return db.Where("list_id = ? AND parent_task_id IS NULL", listID)
		}
	}

	return &taskCursor{
		db:       r.db,
		scope:    scope,
		pageSize: r.pageSize,
	}, nil
}

// taskCursor reads its scope in keyset pages, so no SQL cursor stays open
// between calls to Next.
type taskCursor struct {
	db       *gorm.DB
	scope    func(*gorm.DB) *gorm.DB
	pageSize int

	page    []domain.Task
	index   int
	lastID  uint
	current domain.Task
	done    bool
	closed  bool
	err     error
}

func (c *taskCursor) Next(ctx context.Context) bool {
	if c.closed || c.err != nil {
		return false
	}

	if c.index >= len(c.page) {
		if c.done {
			return false
		}
		if err := c.fetch(ctx); err != nil {
			c.err = err
			return false
		}
		if len(c.page) == 0 {
			return false
		}
	}

	c.current = c.page[c.index]
	c.index++
	c.lastID = c.current.ID
	return true
}

func (c *taskCursor) fetch(ctx context.Context) error {
	db := c.db.WithContext(ctx)

	var page []domain.Task
	if err := db.Model(&domain.Task{}).
		Scopes(c.scope).
		Where("id > ?", c.lastID).
		Order("id ASC").
		Limit(c.pageSize).
		Find(&page).Error; err != nil {
		return errors.Wrap(err, "failed to read tasks")
	}

	if len(page) < c.pageSize {
		c.done = true
	}

	if len(page) > 0 {
		ids := make([]uint, len(page))
		for i := range page {
			ids[i] = page[i].ID
		}

		var parents []uint
		if err := db.Model(&domain.Task{}).
			Where("parent_task_id IN ?", ids).
			Distinct().
			Pluck("parent_task_id", &parents).Error; err != nil {
			return errors.Wrap(err, "failed to read subtask markers")
		}

		hasChildren := make(map[uint]bool, len(parents))
		for _, id := range parents {
			hasChildren[id] = true
		}
		for i := range page {
			page[i].HasSubtasks = hasChildren[page[i].ID]
		}
	}

	c.page = page
	c.index = 0
	return nil
}

func (c *taskCursor) Key() string {
	return c.current.HashID
}

func (c *taskCursor) Task() domain.Task {
	return c.current
}

func (c *taskCursor) Err() error {
	return c.err
}

func (c *taskCursor) Close() error {
	c.closed = true
	c.page = nil
	return nil
}
