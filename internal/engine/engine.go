// Package engine is the runtime core: it owns the one operation the
// rest of the system calls, Optimize(task) -> result, wrapped with
// structured logging (sensitive keys redacted), OpenTelemetry tracing,
// and panic recovery that records to its own span instead of crashing
// the process.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/atlantispak/packplan/internal/branchbound"
	"github.com/atlantispak/packplan/internal/compat"
	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/internal/genetic"
	"github.com/atlantispak/packplan/internal/hybrid"
	"github.com/atlantispak/packplan/internal/knobs"
	"github.com/atlantispak/packplan/internal/rules"
	"github.com/atlantispak/packplan/pkg/config"
	"github.com/atlantispak/packplan/pkg/telemetry"
	"github.com/atlantispak/packplan/pkg/version"
)

// Config holds engine-wide settings.
type Config struct {
	// JsonLogs switches the default logger to log/slog's JSON handler.
	JsonLogs bool

	// Seed controls the genetic optimizer's PRNG. Zero means "let
	// NewOptimizer pick its own default", which is fixed and therefore
	// reproducible — callers that want system randomness must pass an
	// explicit seed derived from their own entropy source.
	Seed int64

	// OtelEndpoint is the OTLP/HTTP collector URL; empty falls back to
	// the OTEL_EXPORTER_OTLP_ENDPOINT environment variable, and spans
	// are discarded when that is unset too (see pkg/telemetry).
	OtelEndpoint  string
	SkipTelemetry bool

	// Tuning adjusts search parameters beyond the command-surface
	// knobs; zero values defer to each optimizer's defaults.
	Tuning config.SearchTuning

	Logger *slog.Logger
}

// Engine is the runtime core. It holds no task-specific state between
// calls: every Optimize call is independent and shares nothing
// mutable with any other.
type Engine struct {
	Logger *slog.Logger
	Tracer trace.Tracer

	config Config
	rules  *rules.Engine
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// WithConfig sets the engine's configuration in one call.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.config = cfg
		if cfg.Logger != nil {
			e.Logger = cfg.Logger
		}
	}
}

// WithRules attaches a compiled eligibility-rules engine. Without one,
// compatibility is strict process-family matching.
func WithRules(r *rules.Engine) Option {
	return func(e *Engine) { e.rules = r }
}

// New builds an Engine, applying opts over sane defaults: a redacting
// JSON slog logger and a best-effort OpenTelemetry tracer provider.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: redactSensitiveData,
	})
	e := &Engine{
		Logger: slog.New(handler),
		Tracer: otel.Tracer("packplan/engine"),
	}

	for _, opt := range opts {
		opt(e)
	}

	if !e.config.SkipTelemetry {
		if _, err := telemetry.Init(ctx, version.AppName, version.Current, e.config.OtelEndpoint); err != nil {
			e.Logger.Warn("telemetry init failed", "error", err)
		}
	}

	return e, nil
}

// Optimize runs one optimization call: validates the command-surface
// knobs, rejects an empty task, picks the compatibility function
// (rules-narrowed if an eligibility engine is attached), and routes to
// the requested algorithm.
func (e *Engine) Optimize(ctx context.Context, task domain.Task, req knobs.Request) (result domain.OptimizationResult, err error) {
	ctx, span := e.Tracer.Start(ctx, "Engine.Optimize")
	defer span.End()
	defer e.recoverPanic(ctx, &result, &err)

	validated, err := knobs.Validate(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid knobs")
		return domain.OptimizationResult{}, err
	}

	if len(task.Orders) == 0 || len(compat.AvailableMachines(task)) == 0 {
		err := domain.ErrEmptyTask
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty task")
		return domain.OptimizationResult{}, err
	}

	if task.PlanningHorizonHours <= 0 {
		task.PlanningHorizonHours = validated.PlanningHorizonHours()
	}

	var compatible compat.Func
	if e.rules != nil {
		compatible = e.rules.Compatibility(task)
	} else {
		compatible = compat.Default(task)
	}

	span.SetAttributes(
		attribute.Int("packplan.orders", len(task.Orders)),
		attribute.Int("packplan.machines", len(task.Machines)),
		attribute.String("packplan.algorithm", string(validated.Algorithm)),
	)

	started := time.Now()

	gaConfig := genetic.Config{
		PopulationSize:       validated.PopulationSize,
		Generations:          validated.Generations,
		CrossoverProbability: e.config.Tuning.Genetic.CrossoverProbability,
		MutationProbability:  e.config.Tuning.Genetic.MutationProbability,
		TournamentSize:       e.config.Tuning.Genetic.TournamentSize,
		Seed:                 e.config.Seed,
	}
	bnbConfig := branchbound.Config{
		ScopeLimit: e.config.Tuning.BranchBound.ScopeLimit,
		MaxNodes:   e.config.Tuning.BranchBound.MaxNodes,
	}

	switch validated.Algorithm {
	case knobs.AlgorithmGenetic:
		result, err = genetic.NewOptimizer(gaConfig).Optimize(task, compatible)
	case knobs.AlgorithmBranchBound:
		result, err = branchbound.NewOptimizer(bnbConfig).Optimize(task, compatible)
	default: // hybrid
		driver := hybrid.NewDriver(genetic.NewOptimizer(gaConfig), branchbound.NewOptimizer(bnbConfig))
		result, err = driver.Optimize(task, compatible)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "optimization failed")
		return domain.OptimizationResult{}, err
	}

	if validated.Algorithm != knobs.AlgorithmHybrid {
		result.OptimizationTimeSeconds = time.Since(started).Seconds()
	}

	e.Logger.Info("optimization complete",
		"algorithm", result.Algorithm,
		"orders", len(task.Orders),
		"scheduled", len(result.Schedule),
		"total_waste_kg", result.TotalWasteKg,
		"makespan_hours", result.MakespanHours,
	)

	return result, nil
}

// recoverPanic captures any panic from within Optimize, records it to
// an independent span, logs it, and hands it back as Optimize's error
// with an empty result — it does not re-panic or exit so library
// callers can decide how to handle the failure.
func (e *Engine) recoverPanic(ctx context.Context, result *domain.OptimizationResult, errp *error) {
	if r := recover(); r != nil {
		*result = domain.OptimizationResult{}
		*errp = fmt.Errorf("packplan: optimization panicked: %v", r)

		tr := otel.Tracer("packplan/engine")
		_, span := tr.Start(ctx, "CriticalPanic")
		stack := debug.Stack()

		span.RecordError(fmt.Errorf("%v", r), trace.WithStackTrace(true))
		span.SetStatus(codes.Error, "panic")
		span.SetAttributes(attribute.String("crash.stack", string(stack)))
		span.End()

		e.Logger.Error("panic recovered", "error", r, "stack", string(stack))
	}
}

// redactSensitiveData scrubs a fixed set of sensitive key names from
// log output.
func redactSensitiveData(groups []string, a slog.Attr) slog.Attr {
	sensitiveKeys := map[string]bool{
		"password": true, "token": true, "secret": true, "api_key": true,
		"webhook_url": true, "credential": true,
	}
	if sensitiveKeys[a.Key] {
		return slog.Attr{Key: a.Key, Value: slog.StringValue("[REDACTED]")}
	}
	return a
}
