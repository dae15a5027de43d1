package domain

import "fmt"

// TaskParent scopes a set of tasks: either the top level of a list, or the
// direct subtasks of a task.
type TaskParent struct {
	listID     uint
	taskHashID string
}

func ListParent(listID uint) TaskParent {
	return TaskParent{listID: listID}
}

func TaskParentOf(hashID string) TaskParent {
	return TaskParent{taskHashID: hashID}
}

// List returns the list id when the parent is a list.
func (p TaskParent) List() (uint, bool) {
	return p.listID, p.taskHashID == ""
}

// Task returns the parent task's hash id when the parent is a task.
func (p TaskParent) Task() (string, bool) {
	return p.taskHashID, p.taskHashID != ""
}

func (p TaskParent) String() string {
	if hashID, ok := p.Task(); ok {
		return fmt.Sprintf("task:%s", hashID)
	}
	return fmt.Sprintf("list:%d", p.listID)
}

// Change is a field update that is either left unchanged or set to a value.
type Change[T any] struct {
	value T
	set   bool
}

func Unchanged[T any]() Change[T] {
	return Change[T]{}
}

func ChangeTo[T any](value T) Change[T] {
	return Change[T]{value: value, set: true}
}

// ChangeFrom maps an optional value to a change; nil means unchanged.
func ChangeFrom[T any](value *T) Change[T] {
	if value == nil {
		return Unchanged[T]()
	}
	return ChangeTo(*value)
}

// Get returns the new value and whether the field changes at all.
func (c Change[T]) Get() (T, bool) {
	return c.value, c.set
}
