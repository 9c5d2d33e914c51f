package moodbites

import (
	"context"
	"net/http"

	"moodbites/tools"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type ToolProvider interface {
	GetTools() []tools.Tool
	GetTool(name string) (tools.Tool, error)
	Execute(ctx context.Context, call tools.Call) (map[string]any, error)
}

// Script is a batch of tool calls, the CLI script file and Lambda event format.
type Script struct {
	Calls []tools.Call `json:"calls"`
}

// CallResult is the outcome of one call in a Script.
type CallResult struct {
	Tool   string         `json:"tool"`
	Output map[string]any `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`
}
