// Package gameevents defines the domain events exchanged over the rpg-toolkit
// event bus. Battle and capture flows publish them; breeding consumes them to
// advance incubation.
package gameevents

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types
const (
	BattleWon        = "battle.won"
	CreatureCaptured = "creature.captured"
)

// Entity types carried on events
const (
	EntityWallet   = "wallet"
	EntityCreature = "creature"
)

type entity struct {
	id  string
	typ string
}

func (e entity) GetID() string   { return e.id }
func (e entity) GetType() string { return e.typ }

var _ core.Entity = entity{}

// Wallet wraps an owner address as an event entity
func Wallet(address string) core.Entity {
	return entity{id: address, typ: EntityWallet}
}

// Creature wraps a creature ID as an event entity
func Creature(id string) core.Entity {
	return entity{id: id, typ: EntityCreature}
}

// NewBattleWon is published when an owner's creature defeats a wild opponent
func NewBattleWon(owner, creatureID string) events.Event {
	return events.NewGameEvent(BattleWon, Wallet(owner), Creature(creatureID))
}

// NewCreatureCaptured is published when an owner captures a wild creature
func NewCreatureCaptured(owner, creatureID string) events.Event {
	return events.NewGameEvent(CreatureCaptured, Wallet(owner), Creature(creatureID))
}

// Owner returns the wallet that triggered an event, or "" when the source is
// not a wallet
func Owner(e events.Event) string {
	if e == nil {
		return ""
	}
	src := e.Source()
	if src == nil || src.GetType() != EntityWallet {
		return ""
	}
	return src.GetID()
}
