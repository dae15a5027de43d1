package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (r *listRepo) TaskByHashID(ctx context.Context, hashID string) (*domain.Task, error) {
	return taskByHashID(r.db.WithContext(ctx), hashID)
}

func taskByHashID(db *gorm.DB, hashID string) (*domain.Task, error) {
	var task domain.Task
	if err := db.Where("hash_id = ?", hashID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.TaskNotFound(hashID)
		}
		return nil, errors.Wrapf(err, "failed to load task %q", hashID)
	}
	return &task, nil
}

func (r *listRepo) CreateTask(ctx context.Context, input domain.NewTask) (*domain.Task, error) {
	if err := r.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid task: %s", describeInvalid(err))
	}

	id := uuid.New()
	task := domain.Task{
		UUID:   id,
		HashID: domain.HashTaskID(id),
		Label:  input.Label,
		Note:   input.Note,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if hashID, ok := input.Parent.Task(); ok {
			parent, err := taskByHashID(tx, hashID)
			if err != nil {
				return err
			}
			task.ListID = parent.ListID
			task.ParentTaskID = &parent.ID
		} else {
			listID, _ := input.Parent.List()
			var count int64
			if err := tx.Model(&domain.List{}).Where("id = ?", listID).Count(&count).Error; err != nil {
				return errors.Wrap(err, "failed to check list")
			}
			if count == 0 {
				return domain.NotFoundError{Entity: "list", Key: fmt.Sprintf("id %d", listID)}
			}
			task.ListID = listID
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}
	return &task, nil
}

func (r *listRepo) UpdateTask(ctx context.Context, id uint, update domain.TaskUpdate) (*domain.Task, error) {
	db := r.db.WithContext(ctx)

	var task domain.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Entity: "task", Key: fmt.Sprintf("id %d", id)}
		}
		return nil, errors.Wrapf(err, "failed to load task %d", id)
	}

	changes := make(map[string]interface{})
	if label, ok := update.Label.Get(); ok {
		changes["label"] = label
	}
	if note, ok := update.Note.Get(); ok {
		changes["note"] = note
	}
	if isComplete, ok := update.IsComplete.Get(); ok {
		changes["is_complete"] = isComplete
	}
	if len(changes) == 0 {
		return &task, nil
	}

	if err := db.Model(&task).Updates(changes).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to update task %s", task.HashID)
	}
	if err := db.First(&task, id).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to reload task %s", task.HashID)
	}
	return &task, nil
}

// DeleteTask removes a task together with every task below it.
func (r *listRepo) DeleteTask(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&domain.Task{}).Where("parent_task_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
				return errors.Wrap(err, "failed to collect subtasks")
			}
			all = append(all, children...)
			frontier = children
		}

		result := tx.Unscoped().Where("id IN ?", all).Delete(&domain.Task{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete task")
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundError{Entity: "task", Key: fmt.Sprintf("id %d", id)}
		}
		return nil
	})
}
