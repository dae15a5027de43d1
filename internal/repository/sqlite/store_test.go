package sqlite

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/mredig/fingerstring-mcp/internal/repository"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9]+`)

// newTestStore opens a private in-memory database. The page size is small so
// streaming crosses page boundaries.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", unsafeName.ReplaceAllString(t.Name(), "_"))
	store, err := Open(dsn, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func mustList(t *testing.T, s *Store, slug string) *domain.List {
	t.Helper()
	list, err := s.CreateList(context.Background(), domain.NewList{Slug: slug})
	require.NoError(t, err)
	return list
}

func mustTask(t *testing.T, s *Store, parent domain.TaskParent, label string) *domain.Task {
	t.Helper()
	task, err := s.CreateTask(context.Background(), domain.NewTask{Parent: parent, Label: label})
	require.NoError(t, err)
	return task
}

func drain(t *testing.T, cursor repository.TaskCursor) []domain.Task {
	t.Helper()
	defer cursor.Close()

	var tasks []domain.Task
	for cursor.Next(context.Background()) {
		assert.Equal(t, cursor.Task().HashID, cursor.Key())
		tasks = append(tasks, cursor.Task())
	}
	require.NoError(t, cursor.Err())
	return tasks
}

func TestFileDSN(t *testing.T) {
	assert.Equal(t, "/tmp/a.sqlite?_busy_timeout=5000&_journal_mode=WAL", FileDSN("/tmp/a.sqlite"))
	assert.Equal(t, "file:x?mode=memory", FileDSN("file:x?mode=memory"))
}

func TestCreateAndFindList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateList(ctx, domain.NewList{Slug: "groceries", Title: strPtr("Groceries")})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := s.ListBySlug(ctx, "groceries")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Groceries", found.HeaderTitle())

	_, err = s.ListBySlug(ctx, "chores")
	assert.True(t, domain.IsNotFoundError(err))
}

func TestCreateListRejectsBadOrDuplicateSlugs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustList(t, s, "todo.v2_x-y")

	_, err := s.CreateList(ctx, domain.NewList{Slug: "todo.v2_x-y"})
	assert.ErrorContains(t, err, "already exists")

	for _, slug := range []string{"", "has space", "slash/y", "ümlaut"} {
		_, err := s.CreateList(ctx, domain.NewList{Slug: slug})
		require.Error(t, err, slug)
		assert.NotContains(t, err.Error(), "NewList.Slug", slug)
	}

	_, err = s.CreateList(ctx, domain.NewList{Slug: "has space"})
	assert.EqualError(t, err, `invalid list slug "has space": slug may only use letters, digits, dots, dashes and underscores`)
}

func TestAllListsInCreationOrder(t *testing.T) {
	s := newTestStore(t)
	mustList(t, s, "b")
	mustList(t, s, "a")

	lists, err := s.AllLists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "b", lists[0].Slug)
	assert.Equal(t, "a", lists[1].Slug)
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	list := mustList(t, s, "groceries")

	task := mustTask(t, s, domain.ListParent(list.ID), "Eggs")
	assert.Len(t, task.HashID, domain.HashIDLength)
	assert.Equal(t, domain.HashTaskID(task.UUID), task.HashID)
	assert.Nil(t, task.ParentTaskID)

	sub := mustTask(t, s, domain.TaskParentOf(task.HashID), "Free range")
	require.NotNil(t, sub.ParentTaskID)
	assert.Equal(t, task.ID, *sub.ParentTaskID)
	assert.Equal(t, list.ID, sub.ListID)

	found, err := s.TaskByHashID(ctx, sub.HashID)
	require.NoError(t, err)
	assert.Equal(t, "Free range", found.Label)

	_, err = s.CreateTask(ctx, domain.NewTask{Parent: domain.TaskParentOf("0000000000"), Label: "x"})
	assert.True(t, domain.IsNotFoundError(err))

	_, err = s.CreateTask(ctx, domain.NewTask{Parent: domain.ListParent(999), Label: "x"})
	assert.True(t, domain.IsNotFoundError(err))

	_, err = s.CreateTask(ctx, domain.NewTask{Parent: domain.ListParent(list.ID)})
	assert.Error(t, err)
}

func TestStreamTasksAcrossPages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	list := mustList(t, s, "big")

	var labels []string
	for i := 0; i < 5; i++ {
		label := fmt.Sprintf("task %d", i)
		labels = append(labels, label)
		mustTask(t, s, domain.ListParent(list.ID), label)
	}
	first := mustTask(t, s, domain.ListParent(list.ID), "parent")
	labels = append(labels, "parent")
	mustTask(t, s, domain.TaskParentOf(first.HashID), "child")

	cursor, err := s.StreamTasks(ctx, domain.ListParent(list.ID))
	require.NoError(t, err)
	tasks := drain(t, cursor)

	var got []string
	for _, task := range tasks {
		got = append(got, task.Label)
		assert.Equal(t, task.Label == "parent", task.HasSubtasks, task.Label)
	}
	assert.Equal(t, labels, got)

	cursor, err = s.StreamTasks(ctx, domain.TaskParentOf(first.HashID))
	require.NoError(t, err)
	children := drain(t, cursor)
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0].Label)
	assert.False(t, children[0].HasSubtasks)
}

func TestStreamTasksUnknownParent(t *testing.T) {
	_, err := newTestStore(t).StreamTasks(context.Background(), domain.TaskParentOf("ffffffffff"))
	assert.True(t, domain.IsNotFoundError(err))
}

func TestClosedCursorStops(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	list := mustList(t, s, "l")
	mustTask(t, s, domain.ListParent(list.ID), "a")

	cursor, err := s.StreamTasks(ctx, domain.ListParent(list.ID))
	require.NoError(t, err)
	require.NoError(t, cursor.Close())
	assert.False(t, cursor.Next(ctx))
	assert.NoError(t, cursor.Err())
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	list := mustList(t, s, "l")
	task := mustTask(t, s, domain.ListParent(list.ID), "Milk")

	updated, err := s.UpdateTask(ctx, task.ID, domain.TaskUpdate{IsComplete: domain.ChangeTo(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsComplete)
	assert.Equal(t, "Milk", updated.Label)
	assert.Nil(t, updated.Note)

	updated, err = s.UpdateTask(ctx, task.ID, domain.TaskUpdate{
		Label: domain.ChangeTo("Oat milk"),
		Note:  domain.ChangeTo("the barista kind"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Oat milk", updated.Label)
	require.NotNil(t, updated.Note)
	assert.Equal(t, "the barista kind", *updated.Note)
	assert.True(t, updated.IsComplete)

	_, err = s.UpdateTask(ctx, 4242, domain.TaskUpdate{})
	assert.True(t, domain.IsNotFoundError(err))
}

func TestDeleteTaskRemovesSubtree(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	list := mustList(t, s, "l")
	root := mustTask(t, s, domain.ListParent(list.ID), "root")
	child := mustTask(t, s, domain.TaskParentOf(root.HashID), "child")
	grandchild := mustTask(t, s, domain.TaskParentOf(child.HashID), "grandchild")
	sibling := mustTask(t, s, domain.ListParent(list.ID), "sibling")

	require.NoError(t, s.DeleteTask(ctx, root.ID))

	for _, hash := range []string{root.HashID, child.HashID, grandchild.HashID} {
		_, err := s.TaskByHashID(ctx, hash)
		assert.True(t, domain.IsNotFoundError(err), hash)
	}
	_, err := s.TaskByHashID(ctx, sibling.HashID)
	assert.NoError(t, err)

	assert.True(t, domain.IsNotFoundError(s.DeleteTask(ctx, root.ID)))
}

func TestDeleteListRemovesTasks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	list := mustList(t, s, "doomed")
	task := mustTask(t, s, domain.ListParent(list.ID), "a")
	mustTask(t, s, domain.TaskParentOf(task.HashID), "b")

	require.NoError(t, s.DeleteList(ctx, list.ID))

	_, err := s.ListBySlug(ctx, "doomed")
	assert.True(t, domain.IsNotFoundError(err))
	_, err = s.TaskByHashID(ctx, task.HashID)
	assert.True(t, domain.IsNotFoundError(err))

	// The slug can be reused once deleted.
	mustList(t, s, "doomed")
}
