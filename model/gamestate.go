package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks a snapshot that failed boundary validation.
var ErrInvalidRequest = errors.New("invalid request")

type Tower struct {
	PlayerID  int `json:"playerId"`
	Level     int `json:"level"`
	HP        int `json:"hp"`
	Armor     int `json:"armor"`
	Resources int `json:"resources"`
}

type EnemyTower struct {
	PlayerID int `json:"playerId"`
	Level    int `json:"level"`
	HP       int `json:"hp"`
	Armor    int `json:"armor"`
}

// EffectiveHP is the troop count needed to destroy the tower outright.
func (e EnemyTower) EffectiveHP() int { return e.HP + e.Armor }

// AttackRecord is one entry of the previous turn's action log.
type AttackRecord struct {
	PlayerID int          `json:"playerId"`
	Action   *AttackOrder `json:"action"`
}

// AttackOrder fields are pointers because the game server omits them for
// non-attack actions; an absent field never counts as damage.
type AttackOrder struct {
	Type       string `json:"type,omitempty"`
	TargetID   *int   `json:"targetId,omitempty"`
	TroopCount *int   `json:"troopCount,omitempty"`
}

// Targets reports whether the record is an attack aimed at playerID.
func (r AttackRecord) Targets(playerID int) bool {
	return r.Action != nil && r.Action.TargetID != nil && *r.Action.TargetID == playerID
}

func (r AttackRecord) Troops() int {
	if r.Action == nil || r.Action.TroopCount == nil {
		return 0
	}
	return *r.Action.TroopCount
}

// NegotiationRequest is the body of a negotiation phase call.
type NegotiationRequest struct {
	GameID      string       `json:"gameId,omitempty"`
	Turn        int          `json:"turn"`
	PlayerTower *Tower       `json:"playerTower"`
	EnemyTowers []EnemyTower `json:"enemyTowers"`
}

func (r NegotiationRequest) Validate() error {
	if err := validateTower(r.PlayerTower); err != nil {
		return err
	}
	return validateEnemies(r.EnemyTowers)
}

// CombatRequest is the body of a combat phase call. A nil PlayerTower is
// legal and yields no actions.
type CombatRequest struct {
	GameID          string         `json:"gameId,omitempty"`
	Turn            int            `json:"turn"`
	PlayerTower     *Tower         `json:"playerTower"`
	EnemyTowers     []EnemyTower   `json:"enemyTowers"`
	PreviousAttacks []AttackRecord `json:"previousAttacks"`
}

func (r CombatRequest) Validate() error {
	if err := validateTower(r.PlayerTower); err != nil {
		return err
	}
	if err := validateEnemies(r.EnemyTowers); err != nil {
		return err
	}
	for i, a := range r.PreviousAttacks {
		if a.Troops() < 0 {
			return fmt.Errorf("%w: previousAttacks[%d] has negative troopCount %d", ErrInvalidRequest, i, a.Troops())
		}
	}
	return nil
}

func validateTower(t *Tower) error {
	if t == nil {
		return nil
	}
	switch {
	case t.Level < 1:
		return fmt.Errorf("%w: playerTower level %d < 1", ErrInvalidRequest, t.Level)
	case t.HP < 0, t.Armor < 0, t.Resources < 0:
		return fmt.Errorf("%w: playerTower has negative hp/armor/resources", ErrInvalidRequest)
	}
	return nil
}

func validateEnemies(enemies []EnemyTower) error {
	for i, e := range enemies {
		if e.HP < 0 || e.Armor < 0 {
			return fmt.Errorf("%w: enemyTowers[%d] has negative hp/armor", ErrInvalidRequest, i)
		}
	}
	return nil
}
