package rules

import "github.com/nstehr/vimy/tower-core/model"

// Plan is the per-turn budget. It starts at the tower's resources and every
// committed action decrements it, so later rules see what earlier ones left.
// A Plan is owned by a single Evaluate call and never shared.
type Plan struct {
	start     int
	remaining int
	actions   []model.Action
}

func newPlan(resources int) *Plan {
	return &Plan{start: resources, remaining: resources, actions: []model.Action{}}
}

// Commit appends a and deducts cost from the remaining budget.
func (p *Plan) Commit(a model.Action, cost int) {
	p.actions = append(p.actions, a)
	p.remaining -= cost
}

func (p *Plan) Remaining() int { return p.remaining }

// Spent is the total committed so far.
func (p *Plan) Spent() int { return p.start - p.remaining }

// Actions returns the emitted actions in commit order.
func (p *Plan) Actions() []model.Action { return p.actions }
