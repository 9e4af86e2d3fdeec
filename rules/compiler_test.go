package rules

import (
	"strings"
	"testing"
)

func findRule(rules []*Rule, name string) *Rule {
	for _, r := range rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func TestCompileDoctrine_InterpolatesThresholds(t *testing.T) {
	d := DefaultDoctrine()
	d.MaxLevel = 7
	d.EarlyGameTurns = 30
	d.PressureFloor = 25
	rules := CompileDoctrine(d)

	up := findRule(rules, "upgrade-tower")
	if up == nil {
		t.Fatal("upgrade-tower rule missing")
	}
	if !strings.Contains(up.ConditionSrc, "Level() < 7") || !strings.Contains(up.ConditionSrc, "Turn() <= 30") {
		t.Errorf("upgrade condition = %q", up.ConditionSrc)
	}

	ps := findRule(rules, "pressure-strike")
	if ps == nil || !strings.Contains(ps.ConditionSrc, "Resources() > 25") {
		t.Errorf("pressure condition not interpolated: %+v", ps)
	}
}

func TestCompileDoctrine_AllConditionsCompile(t *testing.T) {
	d := Doctrine{DefenseShare: 3, MaxLevel: -1, PressureFloor: -10}
	if _, err := NewEngine(CompileDoctrine(d)); err != nil {
		t.Fatalf("clamped doctrine produced invalid rules: %v", err)
	}
}
