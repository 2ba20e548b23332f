package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/agent"
	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
	_ "github.com/rwxproject/agent-toolkit/pkg/llm/autoload" // 自動註冊 LLM Providers
	"github.com/rwxproject/agent-toolkit/pkg/logging"
	"github.com/rwxproject/agent-toolkit/pkg/monitor"
	"github.com/rwxproject/agent-toolkit/pkg/session"
	"github.com/rwxproject/agent-toolkit/pkg/tools"
)

func main() {
	monitor.PrintBanner()

	// --- 0. 讀取設定 ---
	cfg, err := config.Load()
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "❌ %v\n", cfgErr)
			if cfgErr.Hint != "" {
				fmt.Fprintf(os.Stderr, "   Hint: %s\n", cfgErr.Hint)
			}
			fmt.Fprintln(os.Stderr, "   Copy .env.example to .env and fill in your credentials.")
		} else {
			fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		}
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		Level:  cfg.Agent.LogLevel,
		Format: cfg.Agent.LogFormat,
		Debug:  cfg.Agent.Debug,
	})

	// --- 1. Model provider ---
	provider, err := llm.NewFromConfig(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to init model provider")
	}

	// --- 2. Session 持久化 ---
	store, err := session.NewStore(cfg.Session)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to init session store")
	}
	sessions := session.NewManager(store, cfg.Session.TTL, logger)
	sessions.Start(time.Minute)
	defer sessions.Close()

	ctx := context.Background()
	sess, err := sessions.Create(ctx, "")
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to create session")
	}

	// --- 3. Agent 組裝 ---
	cliMon := monitor.NewCLIMonitor()
	cliMon.Start()
	defer cliMon.Stop()

	ag, err := buildAgent(cfg, provider, logger, cliMon, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to build agent")
	}

	// --- 4. 設定檔熱重載（編輯 .env 後於下一輪對話前套用）---
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	reloadCh := config.Watch(watchCtx, logger, ".env")

	fmt.Printf("%s ready. Type 'quit' to exit, 'reset' to clear the conversation.\n\n", cfg.Agent.Name)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case _, ok := <-reloadCh:
			if ok {
				cfg, ag = reload(cfg, ag, cliMon, logger)
			}
		default:
		}

		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit":
			fmt.Println("Goodbye!")
			return
		case "reset":
			ag.Reset()
			if err := sessions.Snapshot(ctx, sess.ID, ag.History()); err != nil {
				logger.Warn().Err(err).Msg("⚠️ Failed to save session")
			}
			fmt.Println("Conversation history cleared.")
			continue
		}

		resp, err := ag.Process(ctx, input)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			continue
		}
		fmt.Printf("%s: %s\n\n", cfg.Agent.Name, resp.Message)

		if err := sessions.Snapshot(ctx, sess.ID, ag.History()); err != nil {
			logger.Warn().Err(err).Msg("⚠️ Failed to save session")
		}
	}
}

// buildAgent assembles an agent with the demo tools, an optional monitor
// and an optional history carried over from a previous incarnation.
func buildAgent(cfg *config.AppConfig, provider llm.Provider, logger zerolog.Logger, mon monitor.Monitor, history []llm.Message) (*agent.Agent, error) {
	ag := agent.New(cfg, provider, logger)
	if err := ag.RegisterTool(tools.NewCalculatorTool()); err != nil {
		return nil, err
	}
	if err := ag.RegisterTool(tools.NewWebSearchTool()); err != nil {
		return nil, err
	}
	if mon != nil {
		ag.AttachMonitor(mon)
	}
	if len(history) > 0 {
		ag.RestoreHistory(history)
	}
	return ag, nil
}

// reload rebuilds the provider and agent from a fresh configuration read,
// carrying the conversation over. On any failure the current pair is kept.
func reload(cfg *config.AppConfig, ag *agent.Agent, mon monitor.Monitor, logger zerolog.Logger) (*config.AppConfig, *agent.Agent) {
	newCfg, err := config.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Reload failed, keeping current configuration")
		return cfg, ag
	}
	provider, err := llm.NewFromConfig(newCfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Reload failed, keeping current provider")
		return cfg, ag
	}
	newAgent, err := buildAgent(newCfg, provider, logger, mon, ag.History())
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Reload failed, keeping current agent")
		return cfg, ag
	}
	logger.Info().Str("provider", newCfg.Provider).Msg("✅ Configuration reloaded")
	return newCfg, newAgent
}
