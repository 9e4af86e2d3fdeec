package rules

import "github.com/nstehr/vimy/tower-core/model"

// Negotiate proposes an alliance with the highest-level enemy to reduce
// pressure, and names the cheapest kill as a shared target when it is a
// different tower. It returns at most one proposal and never nil.
func Negotiate(tower *model.Tower, enemies []model.EnemyTower) []model.DiplomacyProposal {
	if len(enemies) == 0 {
		return []model.DiplomacyProposal{}
	}

	strongest := ByLevel(enemies)[0]
	weakest := ByWeakness(enemies)[0]

	proposal := model.DiplomacyProposal{AllyID: strongest.PlayerID}
	if weakest.PlayerID != strongest.PlayerID {
		target := weakest.PlayerID
		proposal.AttackTargetID = &target
	}
	return []model.DiplomacyProposal{proposal}
}
