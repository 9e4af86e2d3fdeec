package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nstehr/vimy/tower-core/model"
	"github.com/nstehr/vimy/tower-core/rules"
)

// Agent owns the decision-making for the bot. It holds no per-match state;
// every call is decided from the snapshot it receives.
type Agent struct {
	Name   string
	Engine *rules.Engine
}

func New(name string, engine *rules.Engine) *Agent {
	return &Agent{Name: name, Engine: engine}
}

// HandleNegotiate picks an ally and a shared target for the diplomacy phase.
func (a *Agent) HandleNegotiate(ctx context.Context, req model.NegotiationRequest) ([]model.DiplomacyProposal, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("negotiate: %w", err)
	}

	proposals := rules.Negotiate(req.PlayerTower, req.EnemyTowers)

	attrs := []any{
		"game", req.GameID,
		"turn", req.Turn,
		"enemies", len(req.EnemyTowers),
		"proposals", len(proposals),
	}
	if len(proposals) > 0 {
		attrs = append(attrs, "ally", proposals[0].AllyID)
		if t := proposals[0].AttackTargetID; t != nil {
			attrs = append(attrs, "target", *t)
		}
	}
	slog.InfoContext(ctx, "negotiation decided", attrs...)
	return proposals, nil
}

// HandleCombat runs the rule engine against the combat snapshot.
func (a *Agent) HandleCombat(ctx context.Context, req model.CombatRequest) ([]model.Action, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("combat: %w", err)
	}

	if req.PlayerTower == nil {
		slog.WarnContext(ctx, "combat request without player tower", "game", req.GameID, "turn", req.Turn)
		return []model.Action{}, nil
	}

	actions := a.Engine.Evaluate(req)

	kinds := make(map[string]int)
	spent := 0
	cost := model.UpgradeCost(req.PlayerTower.Level)
	for _, act := range actions {
		kinds[act.Type]++
		spent += act.Cost(cost)
	}

	slog.InfoContext(ctx, "combat decided",
		"game", req.GameID,
		"turn", req.Turn,
		"player", req.PlayerTower.PlayerID,
		"level", req.PlayerTower.Level,
		"hp", req.PlayerTower.HP,
		"resources", req.PlayerTower.Resources,
		"incoming", rules.IncomingDamage(req.PreviousAttacks, req.PlayerTower.PlayerID),
		"enemies", len(req.EnemyTowers),
		"actions", kinds,
		"spent", spent,
	)
	return actions, nil
}
