package model

import "testing"

func TestUpgradeCost(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 50},
		{2, 88}, // round(87.5) rounds up
		{3, 153},
		{4, 268},
		{5, 469}, // round(468.945...)
	}
	for _, tc := range tests {
		if got := UpgradeCost(tc.level); got != tc.want {
			t.Errorf("UpgradeCost(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestResourcePerTurn(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 20},
		{2, 30},
		{3, 45},
		{4, 68}, // round(67.5) rounds up
		{5, 101},
	}
	for _, tc := range tests {
		if got := ResourcePerTurn(tc.level); got != tc.want {
			t.Errorf("ResourcePerTurn(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestCostCurvesIncreasing(t *testing.T) {
	for level := 1; level < 10; level++ {
		if UpgradeCost(level+1) <= UpgradeCost(level) {
			t.Errorf("UpgradeCost not increasing at level %d", level)
		}
		if ResourcePerTurn(level+1) <= ResourcePerTurn(level) {
			t.Errorf("ResourcePerTurn not increasing at level %d", level)
		}
	}
}
