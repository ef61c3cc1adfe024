// Package rules implements an optional eligibility-rules layer: CEL
// expressions that exclude otherwise family-compatible (order,
// machine) pairings for plant-specific reasons the core optimizer
// knows nothing about (e.g. keeping rush orders off the oldest
// machine in a family). An engine with no rules loaded changes
// nothing — every pairing the default family-match compatibility
// function allows stays allowed.
package rules

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/atlantispak/packplan/internal/compat"
	"github.com/atlantispak/packplan/internal/domain"
)

// Rule is one user-defined exclusion. Condition is a CEL boolean
// expression over `order` and `machine`; when it evaluates true for a
// given pairing, that pairing is excluded from eligibility regardless
// of process-family match.
type Rule struct {
	ID        string
	Condition string
	Priority  int
}

// Engine compiles and evaluates a set of Rules.
type Engine struct {
	env               *cel.Env
	programs          map[string]cel.Program
	rules             []Rule
	exclusionsCounter metric.Int64Counter
}

// NewEngine builds the CEL environment with the order/machine
// variables every rule's condition may reference.
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("order", decls.NewMapType(decls.String, decls.Dyn)),
			decls.NewVar("machine", decls.NewMapType(decls.String, decls.Dyn)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("rules: failed to create CEL env: %w", err)
	}

	meter := otel.Meter("packplan/rules")
	counter, err := meter.Int64Counter("packplan.rules.exclusions",
		metric.WithDescription("Pairings excluded by eligibility rules"))
	if err != nil {
		return nil, fmt.Errorf("rules: failed to create metric: %w", err)
	}

	return &Engine{env: env, programs: make(map[string]cel.Program), exclusionsCounter: counter}, nil
}

// Compile prepares rules for evaluation, replacing any previously
// compiled set.
func (e *Engine) Compile(rules []Rule) error {
	programs := make(map[string]cel.Program, len(rules))
	for _, r := range rules {
		ast, issues := e.env.Compile(r.Condition)
		if issues != nil && issues.Err() != nil {
			return fmt.Errorf("rules: rule %s compilation error: %w", r.ID, issues.Err())
		}
		prg, err := e.env.Program(ast)
		if err != nil {
			return fmt.Errorf("rules: rule %s program error: %w", r.ID, err)
		}
		programs[r.ID] = prg
	}

	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})

	e.rules = sorted
	e.programs = programs
	return nil
}

// Excludes reports whether any compiled rule excludes the (order,
// machine) pairing.
func (e *Engine) Excludes(order domain.Order, machine domain.Machine) bool {
	if len(e.rules) == 0 {
		return false
	}
	vars := map[string]interface{}{
		"order":   orderVars(order),
		"machine": machineVars(machine),
	}
	for _, r := range e.rules {
		prg, ok := e.programs[r.ID]
		if !ok {
			continue
		}
		out, _, err := prg.Eval(vars)
		if err != nil {
			continue
		}
		if excluded, ok := out.Value().(bool); ok && excluded {
			e.exclusionsCounter.Add(context.Background(), 1,
				metric.WithAttributes(attribute.String("rule.id", r.ID)))
			return true
		}
	}
	return false
}

// Compatibility wraps compat.Default(task), additionally filtering out
// pairings any compiled rule excludes.
func (e *Engine) Compatibility(task domain.Task) compat.Func {
	base := compat.Default(task)
	return func(order domain.Order) []domain.Machine {
		candidates := base(order)
		out := make([]domain.Machine, 0, len(candidates))
		for _, m := range candidates {
			if !e.Excludes(order, m) {
				out = append(out, m)
			}
		}
		return out
	}
}

func orderVars(o domain.Order) map[string]interface{} {
	thickness := 0.0
	if o.ThicknessMM != nil {
		thickness = *o.ThicknessMM
	}
	return map[string]interface{}{
		"id":             int64(o.ID),
		"process_family": string(o.ProcessFamily),
		"material_id":    int64(o.MaterialID),
		"color":          o.Color,
		"caliber":        o.Caliber,
		"thickness_mm":   thickness,
		"quantity_kg":    o.QuantityKg,
		"priority":       int64(o.Priority),
	}
}

func machineVars(m domain.Machine) map[string]interface{} {
	return map[string]interface{}{
		"id":             int64(m.ID),
		"process_family": string(m.ProcessFamily),
		"capacity":       m.EffectiveCapacity(),
	}
}
