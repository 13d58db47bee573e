package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samrat0033/financial-agent/agents"
	"github.com/samrat0033/financial-agent/config"
	"github.com/samrat0033/financial-agent/server"
	"github.com/samrat0033/financial-agent/tools/calculator"
	"github.com/samrat0033/financial-agent/tools/websearch"
	"github.com/samrat0033/financial-agent/tools/webscraper"
	"github.com/samrat0033/financial-agent/tools/yfinance"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	defs, err := config.LoadAgents(cfg.AgentsFile)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	team := buildTeam(cfg, defs, provider)
	srv := server.New(team, logger, cfg.RequestTimeout)
	logger.Info("financial agent listening",
		"addr", cfg.ListenAddr,
		"provider", cfg.Provider,
	)
	return srv.Start(ctx, cfg.ListenAddr)
}

func newProvider(ctx context.Context, cfg config.Config) (agents.Provider, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return agents.NewOpenAIProvider(cfg.OpenAIAPIKey, ""), noop, nil
	case config.ProviderGroq:
		return agents.NewOpenAIProvider(cfg.GroqAPIKey, agents.GroqBaseURL), noop, nil
	default:
		p, err := agents.NewGeminiProvider(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	}
}

func buildTeam(cfg config.Config, defs config.Agents, provider agents.Provider) *agents.Team {
	webAgent := agents.NewAgent(
		agents.WithName(defs.WebSearch.Name),
		agents.WithRole(defs.WebSearch.Role),
		agents.WithModel(defs.WebSearch.Model),
		agents.WithInstructions(defs.WebSearch.Instructions...),
		agents.WithProvider(provider),
		agents.WithTools(
			websearch.New(websearch.WithBaseURL(cfg.SearxngURL)),
			webscraper.New(),
		),
		agents.WithShowToolCalls(true),
		agents.WithMarkdown(true),
		agents.WithMaxToolRounds(cfg.MaxToolRounds),
	)
	financeAgent := agents.NewAgent(
		agents.WithName(defs.Finance.Name),
		agents.WithRole(defs.Finance.Role),
		agents.WithModel(defs.Finance.Model),
		agents.WithInstructions(defs.Finance.Instructions...),
		agents.WithProvider(provider),
		agents.WithTools(
			yfinance.New(),
			calculator.New(),
		),
		agents.WithShowToolCalls(true),
		agents.WithMarkdown(true),
		agents.WithMaxToolRounds(cfg.MaxToolRounds),
	)
	return agents.NewTeam(
		agents.WithName(defs.Team.Name),
		agents.WithRole(defs.Team.Role),
		agents.WithModel(defs.Team.Model),
		agents.WithInstructions(defs.Team.Instructions...),
		agents.WithProvider(provider),
		agents.WithMembers(webAgent, financeAgent),
		agents.WithShowToolCalls(true),
		agents.WithMarkdown(true),
		agents.WithMaxToolRounds(cfg.MaxToolRounds),
	)
}
