// Package schema describes tool inputs as typed nodes and renders them into
// the JSON Schema documents published in an MCP tool's inputSchema.
package schema

// Node is one typed input field description. The set of implementations is
// closed: String, Boolean, Number, Array and Object.
type Node interface {
	// Render returns the node's JSON Schema form. Absent optional attributes
	// are left out rather than emitted as null.
	Render() map[string]any

	// IsRequired reports whether the field must be present in a call.
	IsRequired() bool

	node()
}

type String struct {
	Description string
	Default     *string
	Required    bool
	MinLength   *int
	MaxLength   *int
	Pattern     string
	Enum        []string
}

type Boolean struct {
	Description string
	Default     *bool
	Required    bool
}

// Number renders as "integer" when Integer is set, otherwise "number".
type Number struct {
	Description      string
	Default          *float64
	Required         bool
	Integer          bool
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64
}

type Array struct {
	Description string
	Default     []Value
	Required    bool
	Item        Node
	MinItems    *int
	MaxItems    *int
	UniqueItems *bool
}

type Object struct {
	Description          string
	Default              map[string]Value
	Required             bool
	Properties           Properties
	AdditionalProperties *bool
}

func (String) node()  {}
func (Boolean) node() {}
func (Number) node()  {}
func (Array) node()   {}
func (Object) node()  {}

func (s String) IsRequired() bool  { return s.Required }
func (b Boolean) IsRequired() bool { return b.Required }
func (n Number) IsRequired() bool  { return n.Required }
func (a Array) IsRequired() bool   { return a.Required }
func (o Object) IsRequired() bool  { return o.Required }

func (s String) Render() map[string]any {
	out := map[string]any{"type": "string"}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Default != nil {
		out["default"] = *s.Default
	}
	if s.MinLength != nil {
		out["minLength"] = *s.MinLength
	}
	if s.MaxLength != nil {
		out["maxLength"] = *s.MaxLength
	}
	if s.Pattern != "" {
		out["pattern"] = s.Pattern
	}
	if s.Enum != nil {
		enum := make([]any, len(s.Enum))
		for i, v := range s.Enum {
			enum[i] = v
		}
		out["enum"] = enum
	}
	return out
}

func (b Boolean) Render() map[string]any {
	out := map[string]any{"type": "boolean"}
	if b.Description != "" {
		out["description"] = b.Description
	}
	if b.Default != nil {
		out["default"] = *b.Default
	}
	return out
}

func (n Number) Render() map[string]any {
	out := map[string]any{"type": "number"}
	if n.Integer {
		out["type"] = "integer"
	}
	if n.Description != "" {
		out["description"] = n.Description
	}
	if n.Default != nil {
		out["default"] = number(*n.Default)
	}
	if n.Minimum != nil {
		out["minimum"] = *n.Minimum
	}
	if n.Maximum != nil {
		out["maximum"] = *n.Maximum
	}
	if n.ExclusiveMinimum != nil {
		out["exclusiveMinimum"] = *n.ExclusiveMinimum
	}
	if n.ExclusiveMaximum != nil {
		out["exclusiveMaximum"] = *n.ExclusiveMaximum
	}
	if n.MultipleOf != nil {
		out["multipleOf"] = *n.MultipleOf
	}
	return out
}

func (a Array) Render() map[string]any {
	out := map[string]any{"type": "array"}
	if a.Description != "" {
		out["description"] = a.Description
	}
	if a.Default != nil {
		out["default"] = ArrayValue(a.Default).render()
	}
	if a.Item != nil {
		out["items"] = a.Item.Render()
	}
	if a.MinItems != nil {
		out["minItems"] = *a.MinItems
	}
	if a.MaxItems != nil {
		out["maxItems"] = *a.MaxItems
	}
	if a.UniqueItems != nil {
		out["uniqueItems"] = *a.UniqueItems
	}
	return out
}

func (o Object) Render() map[string]any {
	out := map[string]any{"type": "object"}
	if o.Properties != nil {
		out["properties"] = o.Properties.render()
		if required := o.Properties.Required(); len(required) > 0 {
			out["required"] = required
		}
	}
	if o.Description != "" {
		out["description"] = o.Description
	}
	if o.Default != nil {
		out["default"] = ObjectValue(o.Default).render()
	}
	if o.AdditionalProperties != nil {
		out["additionalProperties"] = *o.AdditionalProperties
	}
	return out
}

// Ptr returns a pointer to v, for filling optional node attributes.
func Ptr[T any](v T) *T {
	return &v
}
