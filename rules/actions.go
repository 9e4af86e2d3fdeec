package rules

import (
	"log/slog"
	"math"

	"github.com/nstehr/vimy/tower-core/model"
)

// ActionBuildArmor absorbs last turn's damage, capped at share of the budget
// so a single threat never starves economy and offense.
func ActionBuildArmor(share float64) ActionFunc {
	return func(env RuleEnv, plan *Plan) error {
		amount := min(env.IncomingDamage(), floorShare(plan.Remaining(), share))
		if amount <= 0 {
			return nil
		}
		slog.Debug("building armor", "incoming", env.IncomingDamage(), "amount", amount)
		plan.Commit(model.Armor(amount), amount)
		return nil
	}
}

func ActionUpgrade(env RuleEnv, plan *Plan) error {
	cost := env.UpgradeCost()
	slog.Debug("upgrading tower", "level", env.Level(), "cost", cost)
	plan.Commit(model.Upgrade(), cost)
	return nil
}

// ActionFinishingBlows walks enemies cheapest-first and kills every one whose
// effective hp fits within ratio of the budget remaining at that point.
func ActionFinishingBlows(ratio float64) ActionFunc {
	return func(env RuleEnv, plan *Plan) error {
		for _, enemy := range ByWeakness(env.Enemies) {
			if plan.Remaining() <= 0 {
				break
			}
			ehp := enemy.EffectiveHP()
			if plan.Remaining() >= ehp && float64(ehp) <= float64(plan.Remaining())*ratio {
				slog.Debug("finishing blow", "target", enemy.PlayerID, "troops", ehp)
				plan.Commit(model.Attack(enemy.PlayerID, ehp), ehp)
			}
		}
		return nil
	}
}

// ActionPressureStrike sends share of what is left at the top threat.
func ActionPressureStrike(share float64) ActionFunc {
	return func(env RuleEnv, plan *Plan) error {
		primary := env.PrimaryThreat()
		strike := floorShare(plan.Remaining(), share)
		if primary == nil || strike <= 0 {
			return nil
		}
		slog.Debug("pressure strike", "target", primary.PlayerID, "troops", strike)
		plan.Commit(model.Attack(primary.PlayerID, strike), strike)
		return nil
	}
}

func floorShare(resources int, share float64) int {
	return int(math.Floor(float64(resources) * share))
}
