// Package creature provides the interface for creature persistence
package creature

//go:generate mockgen -destination=mock/mock_repository.go -package=creaturemock github.com/KirkDiggler/pokechain-api/internal/repositories/creature Repository

import (
	"context"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
)

// Repository defines the interface for creature persistence
type Repository interface {
	// Create stores a new creature
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a creature with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a creature by ID
	// Returns errors.NotFound if the creature doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a creature, moving it between owner indexes when the
	// owner changed
	// Returns errors.NotFound if the creature doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a creature
	// Returns errors.NotFound if the creature doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner retrieves every creature held by a wallet, oldest first
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// CreateInput defines the input for creating a creature
type CreateInput struct {
	Creature *entities.Creature
}

// CreateOutput defines the output for creating a creature
type CreateOutput struct {
	Creature *entities.Creature
}

// GetInput defines the input for getting a creature
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a creature
type GetOutput struct {
	Creature *entities.Creature
}

// UpdateInput defines the input for updating a creature
type UpdateInput struct {
	Creature *entities.Creature
}

// UpdateOutput defines the output for updating a creature
type UpdateOutput struct {
	Creature *entities.Creature
}

// DeleteInput defines the input for deleting a creature
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a creature
type DeleteOutput struct{}

// ListByOwnerInput defines the input for listing an owner's creatures
type ListByOwnerInput struct {
	Owner string
}

// ListByOwnerOutput defines the output for listing an owner's creatures
type ListByOwnerOutput struct {
	Creatures []*entities.Creature
}
