package agents

import (
	"fmt"
	"strings"

	"github.com/samrat0033/financial-agent/tools"
)

// systemPrompt assembles a system prompt from the agent's role, its tool and
// member inventory, and its instructions.
func systemPrompt(role string, instructions []string, callers []tools.Caller, members []*Agent, markdown bool) string {
	parts := make([]string, 0, len(instructions)+len(callers)+len(members)+8)
	parts = append(parts, "# IDENTITY and PURPOSE")
	parts = append(parts, "- "+role)
	if len(members) > 0 {
		parts = append(parts, "", "# TEAM")
		for _, m := range members {
			parts = append(parts, fmt.Sprintf("- %s (call %s): %s", m.Name(), memberToolName(m.Name()), m.Role()))
		}
	}
	if len(callers) > 0 {
		parts = append(parts, "", "# AVAILABLE TOOLS")
		for _, c := range callers {
			spec := c.Spec()
			parts = append(parts, fmt.Sprintf("- %s: %s", spec.Name, spec.Description))
		}
	}
	if len(instructions) > 0 {
		parts = append(parts, "", "# INSTRUCTIONS")
		for _, instruction := range instructions {
			parts = append(parts, "- "+instruction)
		}
	}
	if markdown {
		parts = append(parts, "", "# OUTPUT INSTRUCTIONS", "- Respond in well formatted markdown.")
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// memberToolName derives the function name a team lead uses to delegate to a
// member, e.g. "Finance AI Agent" becomes "ask_finance_ai_agent".
func memberToolName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	return "ask_" + strings.Trim(slug, "_")
}
