package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// AgentSpec defines one agent's presentation and prompt configuration.
type AgentSpec struct {
	Name         string   `yaml:"name" validate:"required"`
	Role         string   `yaml:"role" validate:"required"`
	Model        string   `yaml:"model" validate:"required"`
	Instructions []string `yaml:"instructions"`
}

// Agents holds the definitions of the agents the service wires together.
type Agents struct {
	Team      AgentSpec `yaml:"team"`
	WebSearch AgentSpec `yaml:"web_search"`
	Finance   AgentSpec `yaml:"finance"`
}

const defaultModel = "gemini-2.0-flash"

// DefaultAgents returns the built-in agent definitions.
func DefaultAgents() Agents {
	return Agents{
		Team: AgentSpec{
			Name:  "Multi AI Agent",
			Role:  "Answers questions by orchestrating other agents. Processes financial queries by extracting stock ticker symbols and passing them to the Finance AI Agent.",
			Model: defaultModel,
			Instructions: []string{
				"Always include sources when providing information from searches.",
				"Use tables to display financial data.",
				"When asked to analyze companies for financial data, identify each company mentioned and determine its exact stock ticker symbol (e.g. 'TSLA' for Tesla, 'NVDA' for NVIDIA).",
				"Delegate financial lookups to the Finance AI Agent one symbol at a time, passing the ticker symbol in the query.",
				"After gathering information for all companies, combine the results into a single comprehensive response.",
			},
		},
		WebSearch: AgentSpec{
			Name:  "Web Search Agent",
			Role:  "Search the web for the information",
			Model: defaultModel,
			Instructions: []string{
				"Always include sources",
			},
		},
		Finance: AgentSpec{
			Name:  "Finance AI Agent",
			Role:  "Provides current stock prices, analyst recommendations, company fundamentals, and news for a given stock ticker symbol.",
			Model: defaultModel,
			Instructions: []string{
				"Use tables to display the data.",
				"When asked for financial information, always ensure you receive a precise stock ticker symbol (e.g., TSLA, NVDA, AAPL) before calling any tool.",
			},
		},
	}
}

var validate = validator.New()

// LoadAgents returns the built-in definitions, overlaid with the YAML file
// at path when path is non-empty.
func LoadAgents(path string) (Agents, error) {
	agents := DefaultAgents()
	if path == "" {
		return agents, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return agents, err
	}
	if err := yaml.Unmarshal(bs, &agents); err != nil {
		return agents, fmt.Errorf("parse agents file: %w", err)
	}
	if err := validate.Struct(agents); err != nil {
		return agents, fmt.Errorf("invalid agents file: %w", err)
	}
	return agents, nil
}
