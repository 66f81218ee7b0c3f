package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sketchflow/sketchflow/internal/agent"
	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/config"
	"github.com/sketchflow/sketchflow/internal/observability"
	"github.com/sketchflow/sketchflow/internal/ops"
	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/planner"
	"github.com/sketchflow/sketchflow/internal/schema"
)

// runtime holds the wired components shared by serve and run.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	service  *canvas.Service
	registry *ops.Registry
	agent    *agent.Agent
	closers  []func() error
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.Warn("close", "error", err)
		}
	}
}

// buildRuntime loads configuration and wires store, service, registry,
// executor, planner, and agent.
func buildRuntime(withMetrics bool) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})

	rt := &runtime{cfg: cfg, logger: logger}

	store, err := buildStore(cfg.Storage, rt)
	if err != nil {
		return nil, err
	}
	rt.service = canvas.NewService(store, logger)
	if withMetrics {
		rt.service.SetMetrics(canvas.NewMetrics())
	}

	registry, err := ops.NewRegistry(rt.service, logger)
	if err != nil {
		return nil, err
	}
	rt.registry = registry

	executor := plan.NewExecutor(registry, logger)
	if withMetrics {
		executor.SetMetrics(plan.NewMetrics())
	}

	p, err := buildPlanner(cfg.Planner, registry.Specs(), logger)
	if err != nil {
		return nil, err
	}
	rt.agent = agent.New(rt.service, p, executor, logger)
	return rt, nil
}

func buildStore(cfg config.StorageConfig, rt *runtime) (canvas.Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "memory":
		return canvas.NewMemoryStore(), nil
	case "sqlite":
		store, err := canvas.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		rt.closers = append(rt.closers, store.Close)
		return store, nil
	case "postgres":
		store, err := canvas.NewPostgresStoreFromDSN(cfg.DSN, nil)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		rt.closers = append(rt.closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func buildPlanner(cfg config.PlannerConfig, specs []*schema.Spec, logger *slog.Logger) (planner.Planner, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		key := cfg.APIKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		return planner.NewOpenAIPlanner(key, cfg.Model, specs, logger), nil
	case "anthropic":
		key := cfg.APIKey
		if key == "" {
			key = os.Getenv("ANTHROPIC_API_KEY")
		}
		return planner.NewAnthropicPlanner(key, cfg.Model, cfg.BaseURL, specs, logger), nil
	default:
		return nil, fmt.Errorf("unknown planner provider %q", cfg.Provider)
	}
}
