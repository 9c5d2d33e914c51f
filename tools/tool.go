package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"moodbites/persist"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

type Call struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// toMap marshals v and decodes it back into a map to keep outputs uniform.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	return m, nil
}

func stringArg(input map[string]any, key string) (string, error) {
	v, ok := input[key]
	if !ok {
		return "", fmt.Errorf("missing required input %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("input %q must be a non-empty string", key)
	}
	return s, nil
}

func optionalStringArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}

func stringsArg(input map[string]any, key string) ([]string, error) {
	switch v := input[key].(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("input %q must be an array of strings", key)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("input %q must be an array of strings", key)
	}
}

// persistOutcome waits for a snapshot write so the caller can report it.
type persistOutcome struct {
	Persisted bool   `json:"persisted"`
	Error     string `json:"persist_error,omitempty"`
}

func waitPersist(ctx context.Context, task *persist.Task) persistOutcome {
	if err := task.Wait(ctx); err != nil {
		return persistOutcome{Error: err.Error()}
	}
	return persistOutcome{Persisted: true}
}

func persistSchema() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"persisted":     {Type: "boolean"},
		"persist_error": {Type: "string"},
	}
}

func suggestionSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":           {Type: "string"},
			"moodId":       {Type: "string"},
			"name":         {Type: "string"},
			"description":  {Type: "string"},
			"ingredients":  {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"instructions": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"prepTime":     {Type: "integer"},
			"tags":         {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Required: []string{"id", "moodId", "name"},
	}
}

func groceryItemSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":      {Type: "string"},
			"title":   {Type: "string"},
			"checked": {Type: "boolean"},
			"source":  {Type: "string"},
		},
		Required: []string{"id", "title", "checked"},
	}
}
