package domain

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"gorm.io/gorm"
)

// HashIDLength is the number of hex characters kept from a task's digest.
const HashIDLength = 10

type List struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;not null"`
	Title       *string
	Description *string
}

// HeaderTitle is the title shown for a list, falling back to its slug.
func (l List) HeaderTitle() string {
	if l.Title != nil && *l.Title != "" {
		return *l.Title
	}
	return l.Slug
}

type Task struct {
	gorm.Model
	UUID         uuid.UUID `gorm:"type:text;uniqueIndex;not null"`
	HashID       string    `gorm:"uniqueIndex;not null"`
	ListID       uint      `gorm:"index;not null"`
	ParentTaskID *uint     `gorm:"index"`
	Label        string    `gorm:"not null"`
	Note         *string
	IsComplete   bool

	// HasSubtasks is filled in by the store when tasks are streamed.
	HasSubtasks bool `gorm:"-"`
}

// HashTaskID derives the short, stable hash identifier for a task UUID.
func HashTaskID(id uuid.UUID) string {
	digest := blake3.Sum256(id[:])
	return hex.EncodeToString(digest[:])[:HashIDLength]
}

// NewList describes a list to be created.
type NewList struct {
	Slug        string `validate:"required,slug"`
	Title       *string
	Description *string
}

// NewTask describes a task to be created under a list or another task.
type NewTask struct {
	Parent TaskParent
	Label  string `validate:"required"`
	Note   *string
}

// TaskUpdate carries the independently optional field changes for a task.
type TaskUpdate struct {
	Label      Change[string]
	Note       Change[string]
	IsComplete Change[bool]
}
