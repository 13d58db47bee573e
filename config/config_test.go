package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROVIDER", "gemini")
	t.Setenv("GOOGLE_API_KEY", "test-key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ListenAddr != ":8001" {
		t.Errorf("ListenAddr = %s, want :8001", cfg.ListenAddr)
	}
	if cfg.RequestTimeout != 120*time.Second {
		t.Errorf("RequestTimeout = %s, want 120s", cfg.RequestTimeout)
	}
}

func TestLoadMissingKey(t *testing.T) {
	t.Setenv("PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Error("expected error for missing GROQ_API_KEY")
	}
}

func TestLoadUnknownProvider(t *testing.T) {
	t.Setenv("PROVIDER", "other")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestLoadAgentsDefaults(t *testing.T) {
	agents, err := LoadAgents("")
	if err != nil {
		t.Fatalf("LoadAgents returned error: %v", err)
	}
	if agents.Team.Name != "Multi AI Agent" {
		t.Errorf("Team.Name = %s", agents.Team.Name)
	}
	if agents.Finance.Model != defaultModel {
		t.Errorf("Finance.Model = %s", agents.Finance.Model)
	}
}

func TestLoadAgentsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	body := `
web_search:
  name: Research Agent
  role: Research things
  model: gemini-2.0-pro
  instructions:
    - Cite everything
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	agents, err := LoadAgents(path)
	if err != nil {
		t.Fatalf("LoadAgents returned error: %v", err)
	}
	if agents.WebSearch.Name != "Research Agent" {
		t.Errorf("WebSearch.Name = %s", agents.WebSearch.Name)
	}
	if agents.WebSearch.Model != "gemini-2.0-pro" {
		t.Errorf("WebSearch.Model = %s", agents.WebSearch.Model)
	}
	// untouched sections keep their defaults
	if agents.Finance.Name != "Finance AI Agent" {
		t.Errorf("Finance.Name = %s", agents.Finance.Name)
	}
}

func TestLoadAgentsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	body := `
finance:
  name: ""
  role: ""
  model: ""
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAgents(path); err == nil {
		t.Error("expected validation error for empty agent fields")
	}
}
