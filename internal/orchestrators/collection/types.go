package collection

import (
	"github.com/KirkDiggler/pokechain-api/internal/entities"
)

// GetCreatureInput defines the request for reading one creature
type GetCreatureInput struct {
	CreatureID string
}

// GetCreatureOutput defines the response for reading one creature
type GetCreatureOutput struct {
	Creature *entities.Creature
}

// ListCreaturesInput defines the request for an owner's collection
type ListCreaturesInput struct {
	Owner string
}

// ListCreaturesOutput defines the response for an owner's collection
type ListCreaturesOutput struct {
	Creatures []*entities.Creature
}

// ClaimStarterInput defines the request for a new player's first creature
type ClaimStarterInput struct {
	Owner     string
	SpeciesID string
}

// ClaimStarterOutput defines the response for claiming a starter
type ClaimStarterOutput struct {
	Creature *entities.Creature
}

// HealInput defines the request for restoring a creature to full HP
type HealInput struct {
	Owner      string
	CreatureID string
}

// HealOutput defines the response for a heal
type HealOutput struct {
	Creature *entities.Creature
}
