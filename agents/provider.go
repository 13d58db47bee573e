package agents

import (
	"context"

	"github.com/samrat0033/financial-agent/tools"
)

// DefaultToolRounds bounds the model/tool call loop per request.
const DefaultToolRounds = 6

// ToolCall is one function invocation requested by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolHandler executes a model-requested tool call and returns the result
// text fed back to the model.
type ToolHandler func(ctx context.Context, call ToolCall) (string, error)

// Request is a single generation request against a provider.
type Request struct {
	Model        string
	SystemPrompt string
	Query        string
	Temperature  float32
	MaxTokens    int
	Tools        []tools.Spec
	// Invoke handles tool calls requested by the model. Required when Tools
	// is non-empty.
	Invoke ToolHandler
	// MaxToolRounds bounds the call/response loop. Zero means DefaultToolRounds.
	MaxToolRounds int
}

func (r *Request) toolRounds() int {
	if r.MaxToolRounds <= 0 {
		return DefaultToolRounds
	}
	return r.MaxToolRounds
}

// Provider generates an answer for a request, driving the tool-calling loop
// of the underlying model SDK.
type Provider interface {
	Generate(ctx context.Context, req *Request) (string, error)
}
