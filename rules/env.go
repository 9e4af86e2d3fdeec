package rules

import (
	"github.com/nstehr/vimy/tower-core/model"
)

// RuleEnv wraps the turn snapshot and exposes helper methods callable from
// expr expressions. The plan pointer makes Resources() reflect spend already
// committed by higher-priority rules.
type RuleEnv struct {
	Tower    model.Tower
	Enemies  []model.EnemyTower
	Attacks  []model.AttackRecord
	TurnNum  int
	incoming int
	plan     *Plan
}

func newRuleEnv(req model.CombatRequest, plan *Plan) RuleEnv {
	return RuleEnv{
		Tower:    *req.PlayerTower,
		Enemies:  req.EnemyTowers,
		Attacks:  req.PreviousAttacks,
		TurnNum:  req.Turn,
		incoming: IncomingDamage(req.PreviousAttacks, req.PlayerTower.PlayerID),
		plan:     plan,
	}
}

// Resources is the budget left after everything committed so far this turn.
func (e RuleEnv) Resources() int {
	if e.plan == nil {
		return e.Tower.Resources
	}
	return e.plan.Remaining()
}

func (e RuleEnv) Level() int { return e.Tower.Level }
func (e RuleEnv) HP() int    { return e.Tower.HP }
func (e RuleEnv) Armor() int { return e.Tower.Armor }
func (e RuleEnv) Turn() int  { return e.TurnNum }

func (e RuleEnv) UpgradeCost() int { return model.UpgradeCost(e.Tower.Level) }

func (e RuleEnv) ResourcePerTurn() int { return model.ResourcePerTurn(e.Tower.Level) }

// IncomingDamage is the troops sent at this tower last turn.
func (e RuleEnv) IncomingDamage() int { return e.incoming }

func (e RuleEnv) EnemyCount() int { return len(e.Enemies) }

func (e RuleEnv) EnemiesVisible() bool { return len(e.Enemies) > 0 }

// WeakestEnemy returns the cheapest kill, or nil with no enemies visible.
func (e RuleEnv) WeakestEnemy() *model.EnemyTower {
	if len(e.Enemies) == 0 {
		return nil
	}
	w := ByWeakness(e.Enemies)[0]
	return &w
}

// PrimaryThreat returns the top-ranked enemy by threat score, or nil.
func (e RuleEnv) PrimaryThreat() *model.EnemyTower {
	if len(e.Enemies) == 0 {
		return nil
	}
	p := ByThreat(e.Enemies)[0]
	return &p
}
