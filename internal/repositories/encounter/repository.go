// Package encounter stores the wild opponent a player is currently facing.
// Encounters expire so abandoned battles do not pile up.
package encounter

import (
	"context"
	"time"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=encountermock github.com/KirkDiggler/pokechain-api/internal/repositories/encounter Repository

// Encounter is one wild battle. A player has at most one at a time.
type Encounter struct {
	// Owner is the wallet battling
	Owner string

	// Wild is the opponent snapshot, including its current HP
	Wild *entities.Creature

	// Turns counts resolved turns
	Turns int32

	CreatedAt time.Time
	ExpiresAt time.Time
}

// SaveInput contains parameters for storing an encounter
type SaveInput struct {
	Encounter *Encounter
	// TTL applies to new encounters; updates keep the remaining lifetime
	TTL time.Duration
}

// SaveOutput contains the stored encounter
type SaveOutput struct {
	Encounter *Encounter
}

// GetInput contains parameters for retrieving an encounter
type GetInput struct {
	Owner string
}

// GetOutput contains the result of retrieving an encounter
type GetOutput struct {
	Encounter *Encounter
}

// DeleteInput contains parameters for ending an encounter
type DeleteInput struct {
	Owner string
}

// DeleteOutput contains the result of ending an encounter
type DeleteOutput struct{}

// Repository defines the interface for encounter storage operations
type Repository interface {
	// Start stores a new encounter, replacing any previous one for the owner
	Start(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves the owner's encounter
	// Returns errors.NotFound when there is none or it expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing encounter, keeping its expiry
	Update(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete ends the owner's encounter
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
