// Command annad is Anna's daemon: loads configuration and policy, wires the
// probe catalog, LLM client, answer engine, planner/execution stack and the
// SQLite change log plus JSONL decision journal behind the gin HTTP shell in
// pkg/api.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jjgarcianorway/anna/internal/config"
	"github.com/jjgarcianorway/anna/pkg/anna"
	"github.com/jjgarcianorway/anna/pkg/answer"
	"github.com/jjgarcianorway/anna/pkg/api"
	"github.com/jjgarcianorway/anna/pkg/changelog"
	"github.com/jjgarcianorway/anna/pkg/cleanup"
	"github.com/jjgarcianorway/anna/pkg/execution"
	"github.com/jjgarcianorway/anna/pkg/journal"
	"github.com/jjgarcianorway/anna/pkg/llm"
	"github.com/jjgarcianorway/anna/pkg/masking"
	"github.com/jjgarcianorway/anna/pkg/policy"
	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/version"
)

func main() {
	configPath := flag.String("config", envOr("ANNA_CONFIG", "/etc/anna/annad.yaml"), "path to daemon configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg.Logging)

	slog.Info("starting annad", "version", version.Full(), "config", *configPath, "listen_addr", cfg.Daemon.ListenAddr)

	rules, models, err := policy.Load(cfg.Paths.PolicyFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || isLoadNotExist(err) {
			slog.Warn("policy file not found, using built-in defaults", "path", cfg.Paths.PolicyFile)
			rules, models = policy.DefaultSet(), policy.DefaultModelPolicy()
		} else {
			slog.Error("failed to load policy", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inventory := probe.Detect(ctx, nil)
	slog.Info("detected host tools", "tools", inventory.AllTools())

	redactor := masking.NewRedactor()
	catalog := probe.NewCatalog(probe.Builtin()...)
	probeExecutor := probe.NewExecutor(inventory, redactor)

	llmClient := llm.NewClient(cfg.LLM.BaseURL, llm.WithMaxRetries(cfg.LLM.MaxRetries))

	engine := answer.NewEngine(llmClient, probeExecutor, catalog, models.Weights, cfg.Daemon.MaxIterations)

	changelogStore, err := changelog.Open(ctx, changelog.Config{Path: cfg.Paths.ChangeLogDB})
	if err != nil {
		slog.Error("failed to open change log", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := changelogStore.Close(); cerr != nil {
			slog.Error("error closing change log", "error", cerr)
		}
	}()

	decisionJournal, err := journal.Open(cfg.Paths.DecisionJournal)
	if err != nil {
		slog.Error("failed to open decision journal", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := decisionJournal.Close(); cerr != nil {
			slog.Error("error closing decision journal", "error", cerr)
		}
	}()

	agent := &anna.Agent{
		Answer:    engine,
		Policy:    rules,
		Models:    models,
		Catalog:   catalog,
		Executor:  execution.NewExecutor(inventory, redactor),
		Changelog: changelogStore,
		Journal:   decisionJournal,
	}

	retention := cleanup.NewService(cleanup.DefaultConfig(), changelogStore)
	retention.Start(ctx)
	defer retention.Stop()

	server := api.NewServer(agent)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.Daemon.ListenAddr)
		if err := server.Start(cfg.Daemon.ListenAddr); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		slog.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Daemon.ShutdownTimeoutMs)*time.Millisecond)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during graceful shutdown", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func isLoadNotExist(err error) bool {
	var loadErr *policy.LoadError
	return errors.As(err, &loadErr) && errors.Is(loadErr.Err, os.ErrNotExist)
}

func setupLogging(cfg config.LoggingConfig) {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
