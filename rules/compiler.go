package rules

import "fmt"

// CompileDoctrine generates the turn's rule set from a doctrine.
// Conditions are built via fmt.Sprintf from validated values, so the
// compiler never generates invalid expr.
//
// Priorities fix the step order: defense, economy, finishing blows,
// pressure strike. Each condition reads the budget left by the steps
// above it.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         "build-armor",
		Priority:     400,
		Category:     "defense",
		Exclusive:    true,
		ConditionSrc: `IncomingDamage() > 0`,
		Action:       ActionBuildArmor(d.DefenseShare),
	})

	rules = append(rules, &Rule{
		Name:      "upgrade-tower",
		Priority:  300,
		Category:  "economy",
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(
			`Level() < %d && Resources() >= UpgradeCost() && (Turn() <= %d || Level() <= %d)`,
			d.MaxLevel, d.EarlyGameTurns, d.CatchUpLevel),
		Action: ActionUpgrade,
	})

	rules = append(rules, &Rule{
		Name:         "finishing-blows",
		Priority:     200,
		Category:     "offense",
		Exclusive:    false,
		ConditionSrc: `EnemyCount() > 0 && Resources() > 0`,
		Action:       ActionFinishingBlows(d.FinishingRatio),
	})

	rules = append(rules, &Rule{
		Name:         "pressure-strike",
		Priority:     100,
		Category:     "offense",
		Exclusive:    false,
		ConditionSrc: fmt.Sprintf(`EnemyCount() > 0 && Resources() > %d`, d.PressureFloor),
		Action:       ActionPressureStrike(d.PressureShare),
	})

	return rules
}
