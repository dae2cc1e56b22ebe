package battle

import (
	"github.com/KirkDiggler/pokechain-api/internal/engine/battle"
	"github.com/KirkDiggler/pokechain-api/internal/engine/progression"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/encounter"
)

// Outcome is the state of an encounter after a turn
type Outcome string

// Turn outcomes
const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
)

// StartEncounterInput defines the request for meeting a wild creature.
// An empty SpeciesID picks a random species; Level 0 uses DefaultWildLevel.
type StartEncounterInput struct {
	Owner     string
	SpeciesID string
	Level     int32
}

// StartEncounterOutput defines the response for starting an encounter
type StartEncounterOutput struct {
	Encounter *encounter.Encounter
}

// GetEncounterInput defines the request for reading the active encounter
type GetEncounterInput struct {
	Owner string
}

// GetEncounterOutput defines the response for reading the active encounter
type GetEncounterOutput struct {
	Encounter *encounter.Encounter
}

// ExecuteTurnInput defines one player action
type ExecuteTurnInput struct {
	Owner      string
	CreatureID string
	MoveName   string
}

// Action is one creature's move within a turn
type Action struct {
	AttackerID string
	DefenderID string
	Move       *entities.Move
	Result     *battle.DamageResult
	// DefenderHP is the defender's HP after the action
	DefenderHP int32
}

// ExecuteTurnOutput defines the result of a turn
type ExecuteTurnOutput struct {
	Actions []*Action
	Player  *entities.Creature
	Wild    *entities.Creature
	Outcome Outcome
	LevelUp *progression.LevelUpResult
}

// FleeInput defines the request for abandoning an encounter
type FleeInput struct {
	Owner string
}

// FleeOutput defines the response for fleeing
type FleeOutput struct{}
