// Package tool is the contract every FingerString tool implements: a spec
// that publishes a name, description and input schema, a constructor that
// validates the argument bag, and a call that does the work.
package tool

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"sync"
	"time"

	"github.com/mredig/fingerstring-mcp/internal/schema"
)

var validName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// Tool is a validated, ready to run invocation.
type Tool interface {
	Call(ctx context.Context) (*Result, error)
}

// Constructor validates args into a Tool. It never does any work.
type Constructor func(args Arguments) (Tool, error)

// Annotations are behaviour hints published to clients.
type Annotations struct {
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
}

type Spec struct {
	Name        string
	Description string
	Schema      schema.Properties
	// OutputType is a zero value of the payload items, used to document
	// what the tool returns. Nil when the tool returns plain strings.
	OutputType  any
	Annotations Annotations
	New         Constructor
}

// Definition is a registered spec with its input schema rendered.
type Definition struct {
	Spec
	InputSchema schema.Document
}

// Registry holds the published tools.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Definition
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]Definition),
		logger: logger,
	}
}

// Register publishes specs. The input schema of each is rendered here, once.
func (r *Registry) Register(specs ...Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, spec := range specs {
		if !validName.MatchString(spec.Name) {
			return fmt.Errorf("tool name %q is invalid", spec.Name)
		}
		if spec.New == nil {
			return fmt.Errorf("tool %q has no constructor", spec.Name)
		}
		if _, exists := r.tools[spec.Name]; exists {
			return fmt.Errorf("tool %q already registered", spec.Name)
		}
		r.tools[spec.Name] = Definition{Spec: spec, InputSchema: spec.Schema.Document()}
	}
	return nil
}

func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.tools[name]
	return def, ok
}

// Definitions returns every registered tool sorted by name.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.tools))
	for _, def := range r.tools {
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b Definition) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return defs
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Call constructs the named tool from args and runs it. Every failure comes
// back as an *Error.
func (r *Registry) Call(ctx context.Context, name string, args Arguments) (*Result, error) {
	def, ok := r.Get(name)
	if !ok {
		return nil, NotFound("no tool named '%s'", name)
	}

	logger := r.logger.With("tool", name)
	start := time.Now()

	result, err := Wrap(ErrorFrom, func() (*Result, error) {
		t, err := def.New(args)
		if err != nil {
			return nil, err
		}
		return t.Call(ctx)
	})
	if err != nil {
		kind, _ := KindOf(err)
		logger.Warn("Tool call failed", "kind", kind.String(), "error", err, "duration", time.Since(start))
		return nil, err
	}

	if result == nil {
		result = Output(name, nil)
	}
	logger.Debug("Tool call finished", "items", len(result.content), "duration", time.Since(start))
	return result, nil
}
