package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHashTaskID(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467f-a8f4-4c1a2b3d5e6f")

	hash := HashTaskID(id)
	assert.Len(t, hash, HashIDLength)
	assert.Regexp(t, "^[0-9a-f]+$", hash)
	assert.Equal(t, hash, HashTaskID(id))
	assert.NotEqual(t, hash, HashTaskID(uuid.New()))
}

func TestHeaderTitle(t *testing.T) {
	title := "Groceries"
	empty := ""

	assert.Equal(t, "Groceries", List{Slug: "groceries", Title: &title}.HeaderTitle())
	assert.Equal(t, "groceries", List{Slug: "groceries", Title: &empty}.HeaderTitle())
	assert.Equal(t, "groceries", List{Slug: "groceries"}.HeaderTitle())
}

func TestTaskParent(t *testing.T) {
	listID, ok := ListParent(3).List()
	assert.True(t, ok)
	assert.Equal(t, uint(3), listID)
	_, ok = ListParent(3).Task()
	assert.False(t, ok)

	hash, ok := TaskParentOf("abc").Task()
	assert.True(t, ok)
	assert.Equal(t, "abc", hash)
	_, ok = TaskParentOf("abc").List()
	assert.False(t, ok)

	assert.Equal(t, "list:3", ListParent(3).String())
	assert.Equal(t, "task:abc", TaskParentOf("abc").String())
}

func TestChange(t *testing.T) {
	_, set := Unchanged[string]().Get()
	assert.False(t, set)

	v, set := ChangeTo("x").Get()
	assert.True(t, set)
	assert.Equal(t, "x", v)

	_, set = ChangeFrom[bool](nil).Get()
	assert.False(t, set)

	done := true
	b, set := ChangeFrom(&done).Get()
	assert.True(t, set)
	assert.True(t, b)
}

func TestNotFoundError(t *testing.T) {
	err := TaskNotFound("0123456789")
	assert.Equal(t, "no task with hash '0123456789'", err.Error())
	assert.True(t, IsNotFoundError(err))
}
