package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/mredig/fingerstring-mcp/internal/tool"
)

// groceryTree builds:
//
//	list 1
//	├── bread (done)
//	│   └── rye
//	├── eggs
//	│   ├── free range (done)
//	│   └── brown
//	│       └── dozen (done)
//	└── milk
func groceryTree() *fakeStore {
	f := newFakeStore()
	list := domain.ListParent(1)

	f.add(list, hash(1), "bread", true)
	f.add(domain.TaskParentOf(hash(1)), hash(2), "rye", false)
	f.add(list, hash(3), "eggs", false)
	f.add(domain.TaskParentOf(hash(3)), hash(4), "free range", true)
	f.add(domain.TaskParentOf(hash(3)), hash(5), "brown", false)
	f.add(domain.TaskParentOf(hash(5)), hash(6), "dozen", true)
	f.add(list, hash(7), "milk", false)
	return f
}

func labels(nodes []TaskNode) []string {
	out := []string{}
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func TestTreeHidesCompletedAtEveryLevel(t *testing.T) {
	f := groceryTree()

	nodes, err := BuildTree(context.Background(), f, domain.ListParent(1), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"eggs", "milk"}, labels(nodes))
	assert.Equal(t, []string{"brown"}, labels(nodes[0].Subtasks))
	assert.Nil(t, nodes[0].Subtasks[0].Subtasks, "brown only has completed subtasks")
	assert.Nil(t, nodes[1].Subtasks)

	// bread was skipped, so its subtasks were never streamed.
	assert.NotContains(t, f.opened, domain.TaskParentOf(hash(1)).String())
}

func TestTreeShowsCompletedWhenAsked(t *testing.T) {
	nodes, err := BuildTree(context.Background(), groceryTree(), domain.ListParent(1), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"bread", "eggs", "milk"}, labels(nodes))
	assert.Equal(t, []string{"rye"}, labels(nodes[0].Subtasks))
	assert.Equal(t, []string{"free range", "brown"}, labels(nodes[1].Subtasks))
	assert.Equal(t, []string{"dozen"}, labels(nodes[1].Subtasks[1].Subtasks))
	assert.True(t, nodes[0].IsComplete)
}

func TestTreeOmitsEmptySubtrees(t *testing.T) {
	nodes, err := BuildTree(context.Background(), groceryTree(), domain.ListParent(1), false)
	require.NoError(t, err)

	data, err := json.Marshal(nodes[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"0000000007","label":"milk","isComplete":false,"hasNote":false}`, string(data))
}

func TestTreeEmptyListIsEmptyArray(t *testing.T) {
	nodes, err := BuildTree(context.Background(), newFakeStore(), domain.ListParent(9), false)
	require.NoError(t, err)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestTreeAbortsOnStreamFailure(t *testing.T) {
	f := groceryTree()
	f.failOn = domain.TaskParentOf(hash(5)).String()
	f.failErr = errors.New("cursor broke")

	nodes, err := BuildTree(context.Background(), f, domain.ListParent(1), false)
	assert.Nil(t, nodes)
	require.Error(t, err)

	var toolErr *tool.Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, tool.KindWrapped, toolErr.Kind)
	assert.ErrorIs(t, err, f.failErr)
}

func TestTreeWalksDepthFirst(t *testing.T) {
	f := groceryTree()
	_, err := BuildTree(context.Background(), f, domain.ListParent(1), true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"list:1",
		"task:" + hash(1),
		"task:" + hash(3),
		"task:" + hash(5),
	}, f.opened)
}
