package rules

import (
	"github.com/expr-lang/expr/vm"
)

// ActionFunc commits spend to the turn's plan when a rule's condition is true.
type ActionFunc func(env RuleEnv, plan *Plan) error

// Rule is the atomic unit of turn behavior: a condition → action pair.
// The engine evaluates rules by priority; an exclusive rule that fires
// blocks lower-priority rules in the same category for the rest of the turn.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // "defense", "economy", "offense"
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
