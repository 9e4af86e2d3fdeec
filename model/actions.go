package model

import (
	"encoding/json"
	"fmt"
)

// Action type constants; these are the strings the game server expects.
const (
	TypeArmor   = "armor"
	TypeUpgrade = "upgrade"
	TypeAttack  = "attack"
)

// Action is a tagged variant: Amount is set for armor, TargetID and
// TroopCount for attack, nothing for upgrade.
type Action struct {
	Type       string
	Amount     int
	TargetID   int
	TroopCount int
}

func Armor(amount int) Action { return Action{Type: TypeArmor, Amount: amount} }

func Upgrade() Action { return Action{Type: TypeUpgrade} }

func Attack(targetID, troops int) Action {
	return Action{Type: TypeAttack, TargetID: targetID, TroopCount: troops}
}

// Cost is the resources the action commits. Upgrades cost whatever the
// tower's current level demands, so the caller passes it in.
func (a Action) Cost(upgradeCost int) int {
	switch a.Type {
	case TypeArmor:
		return a.Amount
	case TypeUpgrade:
		return upgradeCost
	case TypeAttack:
		return a.TroopCount
	}
	return 0
}

type armorWire struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

type upgradeWire struct {
	Type string `json:"type"`
}

type attackWire struct {
	Type       string `json:"type"`
	TargetID   int    `json:"targetId"`
	TroopCount int    `json:"troopCount"`
}

func (a Action) MarshalJSON() ([]byte, error) {
	switch a.Type {
	case TypeArmor:
		return json.Marshal(armorWire{Type: a.Type, Amount: a.Amount})
	case TypeUpgrade:
		return json.Marshal(upgradeWire{Type: a.Type})
	case TypeAttack:
		return json.Marshal(attackWire{Type: a.Type, TargetID: a.TargetID, TroopCount: a.TroopCount})
	}
	return nil, fmt.Errorf("marshal action: unknown type %q", a.Type)
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       string `json:"type"`
		Amount     int    `json:"amount"`
		TargetID   int    `json:"targetId"`
		TroopCount int    `json:"troopCount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal action: %w", err)
	}
	switch raw.Type {
	case TypeArmor:
		*a = Armor(raw.Amount)
	case TypeUpgrade:
		*a = Upgrade()
	case TypeAttack:
		*a = Attack(raw.TargetID, raw.TroopCount)
	default:
		return fmt.Errorf("unmarshal action: unknown type %q", raw.Type)
	}
	return nil
}

// DiplomacyProposal asks AllyID for an alliance and optionally suggests a
// common target.
type DiplomacyProposal struct {
	AllyID         int  `json:"allyId"`
	AttackTargetID *int `json:"attackTargetId,omitempty"`
}
