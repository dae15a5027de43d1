package sqlite

import (
	"context"
	"fmt"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (r *listRepo) AllLists(ctx context.Context) ([]domain.List, error) {
	var lists []domain.List
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&lists).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load lists")
	}
	return lists, nil
}

func (r *listRepo) ListBySlug(ctx context.Context, slug string) (*domain.List, error) {
	var list domain.List
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ListNotFound(slug)
		}
		return nil, errors.Wrapf(err, "failed to load list %q", slug)
	}
	return &list, nil
}

func (r *listRepo) CreateList(ctx context.Context, input domain.NewList) (*domain.List, error) {
	if err := r.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid list slug %q: %s", input.Slug, describeInvalid(err))
	}

	list := domain.List{
		Slug:        input.Slug,
		Title:       input.Title,
		Description: input.Description,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.List{}).Where("slug = ?", input.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("a list with slug %q already exists", input.Slug)
		}
		return tx.Create(&list).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create list")
	}
	return &list, nil
}

func (r *listRepo) DeleteList(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("list_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete list tasks")
		}
		result := tx.Unscoped().Delete(&domain.List{}, id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete list")
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundError{Entity: "list", Key: fmt.Sprintf("id %d", id)}
		}
		return nil
	})
}
