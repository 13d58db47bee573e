package agents

import (
	"github.com/samrat0033/financial-agent/tools"
)

type Option func(c *Config)

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}

func WithRole(role string) Option {
	return func(c *Config) {
		c.role = role
	}
}

func WithInstructions(instructions ...string) Option {
	return func(c *Config) {
		c.instructions = instructions
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

func WithProvider(p Provider) Option {
	return func(c *Config) {
		c.provider = p
	}
}

func WithTools(callers ...tools.Caller) Option {
	return func(c *Config) {
		c.tools = callers
	}
}

func WithMembers(members ...*Agent) Option {
	return func(c *Config) {
		c.members = members
	}
}

func WithShowToolCalls(show bool) Option {
	return func(c *Config) {
		c.showToolCalls = show
	}
}

func WithMarkdown(markdown bool) Option {
	return func(c *Config) {
		c.markdown = markdown
	}
}

func WithMaxToolRounds(rounds int) Option {
	return func(c *Config) {
		c.maxToolRounds = rounds
	}
}
