package agents

import (
	"context"
	"fmt"
	"io"

	"github.com/samrat0033/financial-agent/tools"
)

// Team is a lead agent that orchestrates member agents. Each member is
// surfaced to the lead model as a callable function taking a single query;
// members answer with their own models and tools.
type Team struct {
	Config
}

// NewTeam initializes a Team. Members are supplied with WithMembers.
func NewTeam(options ...Option) *Team {
	ret := new(Team)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.maxToolRounds == 0 {
		ret.maxToolRounds = DefaultToolRounds
	}
	return ret
}

func (t Team) Name() string {
	return t.name
}

// SystemPrompt returns the lead agent's assembled system prompt, including
// the member roster.
func (t *Team) SystemPrompt() string {
	return systemPrompt(t.role, t.instructions, t.tools, t.members, t.markdown)
}

// Ask runs the team for one query and returns the combined answer text.
func (t *Team) Ask(ctx context.Context, query string, trace io.Writer) (string, error) {
	specs := make([]tools.Spec, 0, len(t.members)+len(t.tools))
	for _, m := range t.members {
		specs = append(specs, memberSpec(m))
	}
	specs = append(specs, toolSpecs(t.tools)...)
	req := &Request{
		Model:         t.model,
		SystemPrompt:  t.SystemPrompt(),
		Query:         query,
		Temperature:   t.temperature,
		MaxTokens:     t.maxTokens,
		Tools:         specs,
		Invoke:        t.invoker(trace),
		MaxToolRounds: t.maxToolRounds,
	}
	return t.provider.Generate(ctx, req)
}

// Run writes a transcript of one query to w. It satisfies the capture
// bridge's Runner contract.
func (t *Team) Run(ctx context.Context, query string, w io.Writer) error {
	writeHeading(w, t.name, query)
	answer, err := t.Ask(ctx, query, w)
	if err != nil {
		return err
	}
	writeAnswer(w, answer)
	return nil
}

// invoker routes model calls to member agents first, then to the lead's own
// tools.
func (t *Team) invoker(trace io.Writer) ToolHandler {
	byName := make(map[string]*Agent, len(t.members))
	for _, m := range t.members {
		byName[memberToolName(m.Name())] = m
	}
	toolByName := make(map[string]tools.Caller, len(t.tools))
	for _, tool := range t.tools {
		toolByName[tool.Spec().Name] = tool
	}
	return func(ctx context.Context, call ToolCall) (string, error) {
		if member, ok := byName[call.Name]; ok {
			query, _ := call.Args["query"].(string)
			if query == "" {
				return "", fmt.Errorf("delegation to %s without a query", member.Name())
			}
			if t.showToolCalls && trace != nil {
				writeDelegation(trace, t.name, member.Name(), query)
			}
			return member.Ask(ctx, query, trace)
		}
		tool, ok := toolByName[call.Name]
		if !ok {
			return "", fmt.Errorf("unknown tool %q", call.Name)
		}
		if t.showToolCalls && trace != nil {
			writeToolTrace(trace, t.name, call)
		}
		return tool.Call(ctx, call.Args)
	}
}

func memberSpec(m *Agent) tools.Spec {
	return tools.Spec{
		Name:        memberToolName(m.Name()),
		Description: fmt.Sprintf("Delegate a task to %s. %s", m.Name(), m.Role()),
		Params: map[string]tools.Param{
			"query": {
				Type:        "string",
				Description: "The task or question for this agent.",
			},
		},
		Required: []string{"query"},
	}
}
