package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mredig/fingerstring-mcp/internal/schema"
)

type echoTool struct {
	text  string
	calls *int
}

func (e echoTool) Call(ctx context.Context) (*Result, error) {
	*e.calls++
	return Output("echo: "+e.text, nil, e.text), nil
}

func echoSpec(name string, calls *int) Spec {
	return Spec{
		Name:        name,
		Description: "Echoes its text",
		Schema: schema.Properties{
			"text": schema.String{Required: true},
		},
		New: func(args Arguments) (Tool, error) {
			text, err := args.RequireString("text")
			if err != nil {
				return nil, err
			}
			return echoTool{text: text, calls: calls}, nil
		},
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	calls := 0
	r := NewRegistry(nil)

	require.NoError(t, r.Register(echoSpec("echo", &calls)))
	err := r.Register(echoSpec("echo", &calls))
	assert.ErrorContains(t, err, "already registered")
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRejectsBadNames(t *testing.T) {
	calls := 0
	r := NewRegistry(nil)
	assert.Error(t, r.Register(echoSpec("", &calls)))
	assert.Error(t, r.Register(echoSpec("has space", &calls)))
}

func TestDefinitionsAreSortedAndRendered(t *testing.T) {
	calls := 0
	r := NewRegistry(nil)
	require.NoError(t, r.Register(echoSpec("zeta", &calls), echoSpec("alpha", &calls)))

	defs := r.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "alpha", defs[0].Name)
	assert.Equal(t, "zeta", defs[1].Name)
	assert.Equal(t, []string{"text"}, defs[0].InputSchema["required"])
}

func TestCallRunsTool(t *testing.T) {
	calls := 0
	r := NewRegistry(nil)
	require.NoError(t, r.Register(echoSpec("echo", &calls)))

	result, err := r.Call(context.Background(), "echo", Arguments{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "echo: hi", result.InputRequest())
	assert.Equal(t, []any{"hi"}, result.Content())
}

func TestCallFailsFastOnMissingArgument(t *testing.T) {
	calls := 0
	r := NewRegistry(nil)
	require.NoError(t, r.Register(echoSpec("echo", &calls)))

	_, err := r.Call(context.Background(), "echo", Arguments{})
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingArgument, kind)
	assert.Zero(t, calls)
}

func TestCallUnknownTool(t *testing.T) {
	_, err := NewRegistry(nil).Call(context.Background(), "nope", nil)
	kind, _ := KindOf(err)
	assert.Equal(t, KindNotFound, kind)
}

type failingTool struct{ err error }

func (f failingTool) Call(context.Context) (*Result, error) { return nil, f.err }

func TestCallAlwaysReturnsToolErrors(t *testing.T) {
	cause := errors.New("boom")
	r := NewRegistry(nil)
	require.NoError(t, r.Register(Spec{
		Name: "fail",
		New:  func(Arguments) (Tool, error) { return failingTool{err: cause}, nil },
	}))

	_, err := r.Call(context.Background(), "fail", nil)
	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, KindWrapped, toolErr.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestOutput(t *testing.T) {
	items := []any{"first", map[string]int{"n": 2}}
	result := Output("req", map[string]any{"page": 1}, items...)
	items[0] = "changed"

	assert.Equal(t, []any{"first", map[string]int{"n": 2}}, result.Content())
	assert.Equal(t, map[string]any{"page": 1}, result.MetaData())

	texts, err := result.ContentText()
	require.NoError(t, err)
	assert.Equal(t, []string{"first", `{"n":2}`}, texts)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"inputRequest":"req","metaData":{"page":1},"content":["first",{"n":2}]}`, string(data))

	data, err = json.Marshal(Output("empty", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"inputRequest":"empty","content":[]}`, string(data))
}
