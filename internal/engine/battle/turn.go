package battle

import "github.com/KirkDiggler/pokechain-api/internal/entities"

// TurnOrder returns the creatures in acting order. The faster creature acts
// first; on an exact speed tie the defender acts first.
func TurnOrder(attacker, defender *entities.Creature) (first, second *entities.Creature) {
	if attacker.Stats.Speed > defender.Stats.Speed {
		return attacker, defender
	}
	return defender, attacker
}
