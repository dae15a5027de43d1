package tool

import (
	"encoding/json"
	"fmt"
)

// Result is the output of one tool call: payload items in order, an echo of
// the request for traceability, and optional metadata.
type Result struct {
	inputRequest string
	metaData     map[string]any
	content      []any
}

// Output builds a Result. Items keep the given order; metaData is passed
// through untouched.
func Output(inputRequest string, metaData map[string]any, items ...any) *Result {
	content := make([]any, len(items))
	copy(content, items)
	return &Result{
		inputRequest: inputRequest,
		metaData:     metaData,
		content:      content,
	}
}

func (r *Result) InputRequest() string {
	return r.inputRequest
}

func (r *Result) MetaData() map[string]any {
	return r.metaData
}

// Content returns a copy of the payload items.
func (r *Result) Content() []any {
	content := make([]any, len(r.content))
	copy(content, r.content)
	return content
}

// ContentText renders each payload item on its own: strings as they are,
// anything else as JSON.
func (r *Result) ContentText() ([]string, error) {
	out := make([]string, 0, len(r.content))
	for i, item := range r.content {
		if text, ok := item.(string); ok {
			out = append(out, text)
			continue
		}
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to encode content item %d: %w", i, err)
		}
		out = append(out, string(data))
	}
	return out, nil
}

type resultEnvelope struct {
	InputRequest string         `json:"inputRequest"`
	MetaData     map[string]any `json:"metaData,omitempty"`
	Content      []any          `json:"content"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultEnvelope{
		InputRequest: r.inputRequest,
		MetaData:     r.metaData,
		Content:      r.content,
	})
}
