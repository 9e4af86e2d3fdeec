package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/vimy/tower-core/model"
)

// Engine runs compiled rules against one combat snapshot per call.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category. The engine keeps no per-turn state: the budget and
// emitted actions live in a Plan local to Evaluate, so calls for different
// matches can run concurrently.
type Engine struct {
	mu    sync.RWMutex
	rules []*Rule
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Evaluate decides the turn's actions. A request without a player tower
// yields an empty, non-nil list.
func (e *Engine) Evaluate(req model.CombatRequest) []model.Action {
	if req.PlayerTower == nil {
		return []model.Action{}
	}

	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	plan := newPlan(req.PlayerTower.Resources)
	env := newRuleEnv(req, plan)
	fired := make(map[string]bool) // category → exclusive rule already fired

	for _, r := range rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category, "resources", plan.Remaining())

		if err := r.Action(env, plan); err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}

	return plan.Actions()
}

// Swap atomically replaces the rule set (called when the doctrine file is
// reloaded). Compiles first; if compilation fails the old rules remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()

	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

// Rules returns the active rule names in evaluation order.
func (e *Engine) Rules() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
