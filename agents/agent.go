package agents

import (
	"context"
	"fmt"
	"io"

	"github.com/samrat0033/financial-agent/tools"
)

// Config represents general agent configuration, populated by Options.
type Config struct {
	// name is the agent name presentation
	name string
	// role describes what the agent is for; it heads the system prompt
	role string
	// instructions are appended to the system prompt as a bullet list
	instructions []string
	// model llm model
	model string
	// temperature for response generation, typically ranging from 0 to 1
	temperature float32
	// maxTokens maximum number of tokens allowed in the response
	maxTokens int
	// provider client for interacting with the language model
	provider Provider
	// tools the agent may call while answering
	tools []tools.Caller
	// members are sub-agents a team lead can delegate to
	members []*Agent
	// showToolCalls echoes tool invocations into the transcript
	showToolCalls bool
	// markdown asks the model for markdown formatted answers
	markdown bool
	// maxToolRounds bounds the tool-calling loop per query
	maxToolRounds int
}

// Agent answers queries with a single model, optionally calling its tools.
type Agent struct {
	Config
}

// NewAgent initializes an Agent.
func NewAgent(options ...Option) *Agent {
	ret := new(Agent)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.maxToolRounds == 0 {
		ret.maxToolRounds = DefaultToolRounds
	}
	return ret
}

func (a Agent) Name() string {
	return a.name
}

func (a Agent) Role() string {
	return a.role
}

// SystemPrompt returns the assembled system prompt.
func (a *Agent) SystemPrompt() string {
	return systemPrompt(a.role, a.instructions, a.tools, nil, a.markdown)
}

// Ask runs the agent for one query and returns the answer text. trace, when
// non-nil, receives tool invocation lines as they happen.
func (a *Agent) Ask(ctx context.Context, query string, trace io.Writer) (string, error) {
	req := &Request{
		Model:         a.model,
		SystemPrompt:  a.SystemPrompt(),
		Query:         query,
		Temperature:   a.temperature,
		MaxTokens:     a.maxTokens,
		Tools:         toolSpecs(a.tools),
		Invoke:        a.invoker(trace),
		MaxToolRounds: a.maxToolRounds,
	}
	return a.provider.Generate(ctx, req)
}

// Run writes a transcript of one query to w: heading, tool traces, answer.
// This is the print-style surface the capture bridge consumes.
func (a *Agent) Run(ctx context.Context, query string, w io.Writer) error {
	writeHeading(w, a.name, query)
	answer, err := a.Ask(ctx, query, w)
	if err != nil {
		return err
	}
	writeAnswer(w, answer)
	return nil
}

func (a *Agent) invoker(trace io.Writer) ToolHandler {
	byName := make(map[string]tools.Caller, len(a.tools))
	for _, tool := range a.tools {
		byName[tool.Spec().Name] = tool
	}
	return func(ctx context.Context, call ToolCall) (string, error) {
		tool, ok := byName[call.Name]
		if !ok {
			return "", fmt.Errorf("unknown tool %q", call.Name)
		}
		if a.showToolCalls && trace != nil {
			writeToolTrace(trace, a.name, call)
		}
		return tool.Call(ctx, call.Args)
	}
}

func toolSpecs(callers []tools.Caller) []tools.Spec {
	if len(callers) == 0 {
		return nil
	}
	ret := make([]tools.Spec, 0, len(callers))
	for _, c := range callers {
		ret = append(ret, c.Spec())
	}
	return ret
}
