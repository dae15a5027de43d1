package schema

import "sort"

// Properties maps field names to their nodes and is the input schema of one
// tool.
type Properties map[string]Node

// Document is a rendered JSON Schema object.
type Document map[string]any

// Required lists the names of required fields, sorted.
func (p Properties) Required() []string {
	required := make([]string, 0, len(p))
	for name, node := range p {
		if node.IsRequired() {
			required = append(required, name)
		}
	}
	sort.Strings(required)
	return required
}

// Document renders the properties as an object schema:
// {"type": "object", "properties": {...}, "required": [...]}.
func (p Properties) Document() Document {
	return Document{
		"type":       "object",
		"properties": p.render(),
		"required":   p.Required(),
	}
}

func (p Properties) render() map[string]any {
	out := make(map[string]any, len(p))
	for name, node := range p {
		out[name] = node.Render()
	}
	return out
}
