package rules

import (
	"encoding/json"
	"fmt"
	"os"
)

// Doctrine holds the thresholds the combat rules are compiled from.
// The defaults are the tuned values the bot ships with; a doctrine file
// may override any subset of them.
type Doctrine struct {
	Name string `json:"name"`

	// DefenseShare caps armor spend as a fraction of current resources.
	DefenseShare float64 `json:"defense_share"`

	MaxLevel       int `json:"max_level"`
	EarlyGameTurns int `json:"early_game_turns"`
	// CatchUpLevel keeps upgrading past the early game while at or below it.
	CatchUpLevel int `json:"catch_up_level"`

	// FinishingRatio is the largest share of current resources a single
	// finishing blow may consume.
	FinishingRatio float64 `json:"finishing_ratio"`

	PressureFloor int     `json:"pressure_floor"`
	PressureShare float64 `json:"pressure_share"`
}

// DefaultDoctrine returns the shipped thresholds.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:           "AI-trapped-strategy",
		DefenseShare:   0.4,
		MaxLevel:       5,
		EarlyGameTurns: 20,
		CatchUpLevel:   2,
		FinishingRatio: 0.7,
		PressureFloor:  10,
		PressureShare:  0.6,
	}
}

// LoadDoctrine reads a JSON doctrine file layered over DefaultDoctrine.
// Fields missing from the file keep their default values.
func LoadDoctrine(path string) (Doctrine, error) {
	d := DefaultDoctrine()
	raw, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read doctrine: %w", err)
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("parse doctrine %s: %w", path, err)
	}
	d.Validate()
	return d, nil
}

// Validate clamps all thresholds to their valid ranges.
func (d *Doctrine) Validate() {
	d.DefenseShare = clamp(d.DefenseShare, 0, 1)
	d.FinishingRatio = clamp(d.FinishingRatio, 0, 1)
	d.PressureShare = clamp(d.PressureShare, 0, 1)
	d.MaxLevel = clampInt(d.MaxLevel, 1, 20)
	d.EarlyGameTurns = clampInt(d.EarlyGameTurns, 0, 1000)
	d.CatchUpLevel = clampInt(d.CatchUpLevel, 0, d.MaxLevel)
	d.PressureFloor = clampInt(d.PressureFloor, 0, 1_000_000)
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
