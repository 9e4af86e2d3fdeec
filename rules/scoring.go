package rules

import (
	"cmp"
	"slices"

	"github.com/nstehr/vimy/tower-core/model"
)

// ThreatScore favors high-level towers and slightly prefers damaged ones.
func ThreatScore(e model.EnemyTower) float64 {
	return float64(e.Level)*2 - float64(e.HP)*0.01
}

// ByThreat returns a copy of enemies, most threatening first.
// Equal scores keep their input order.
func ByThreat(enemies []model.EnemyTower) []model.EnemyTower {
	out := slices.Clone(enemies)
	slices.SortStableFunc(out, func(a, b model.EnemyTower) int {
		return cmp.Compare(ThreatScore(b), ThreatScore(a))
	})
	return out
}

// ByWeakness returns a copy of enemies, cheapest kill (hp + armor) first.
func ByWeakness(enemies []model.EnemyTower) []model.EnemyTower {
	out := slices.Clone(enemies)
	slices.SortStableFunc(out, func(a, b model.EnemyTower) int {
		return cmp.Compare(a.EffectiveHP(), b.EffectiveHP())
	})
	return out
}

// ByLevel returns a copy of enemies, highest level first.
func ByLevel(enemies []model.EnemyTower) []model.EnemyTower {
	out := slices.Clone(enemies)
	slices.SortStableFunc(out, func(a, b model.EnemyTower) int {
		return cmp.Compare(b.Level, a.Level)
	})
	return out
}

// IncomingDamage sums the troops aimed at playerID last turn.
func IncomingDamage(attacks []model.AttackRecord, playerID int) int {
	dmg := 0
	for _, a := range attacks {
		if a.Targets(playerID) {
			dmg += a.Troops()
		}
	}
	return dmg
}
