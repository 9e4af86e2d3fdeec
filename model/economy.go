package model

import "math"

// UpgradeCost is the price of raising a tower from level to level+1.
// math.Round rounds half away from zero, which is half-up for these
// positive values: UpgradeCost(2) = round(87.5) = 88.
func UpgradeCost(level int) int {
	return int(math.Round(50 * math.Pow(1.75, float64(level-1))))
}

// ResourcePerTurn is the income a tower of the given level collects each turn.
func ResourcePerTurn(level int) int {
	return int(math.Round(20 * math.Pow(1.5, float64(level-1))))
}
