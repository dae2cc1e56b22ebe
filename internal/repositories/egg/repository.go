// Package egg provides the interface for egg persistence
package egg

//go:generate mockgen -destination=mock/mock_repository.go -package=eggmock github.com/KirkDiggler/pokechain-api/internal/repositories/egg Repository

import (
	"context"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
)

// Repository defines the interface for egg persistence
type Repository interface {
	// Create stores a new egg. With MaxIncubating set the owner's unhatched
	// eggs are counted under the same optimistic lock as the write.
	// Returns errors.AlreadyExists if an egg with the same ID exists
	// Returns errors.CapacityExceeded when the owner is already full
	// Returns errors.Aborted when a concurrent write won
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an egg by ID
	// Returns errors.NotFound if the egg doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an egg
	// Returns errors.NotFound if the egg doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Transition loads the egg, lets Apply mutate it and writes it back only
	// if nobody changed it in between. When Apply moves the egg to a new owner
	// and MaxIncubating is set, the new owner's capacity is checked too.
	// Returns the error from Apply unchanged
	// Returns errors.Aborted when a concurrent write won
	Transition(ctx context.Context, input TransitionInput) (*TransitionOutput, error)

	// Delete removes an egg and its owner index entry
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner retrieves every egg held by a wallet, oldest first.
	// IncubatingOnly drops hatched eggs.
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// CreateInput defines the input for creating an egg
type CreateInput struct {
	Egg *entities.Egg
	// MaxIncubating caps the owner's unhatched eggs; zero skips the check
	MaxIncubating int
}

// CreateOutput defines the output for creating an egg
type CreateOutput struct {
	Egg *entities.Egg
}

// GetInput defines the input for getting an egg
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an egg
type GetOutput struct {
	Egg *entities.Egg
}

// UpdateInput defines the input for updating an egg
type UpdateInput struct {
	Egg *entities.Egg
}

// UpdateOutput defines the output for updating an egg
type UpdateOutput struct {
	Egg *entities.Egg
}

// DeleteInput defines the input for deleting an egg
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an egg
type DeleteOutput struct{}

// ListByOwnerInput defines the input for listing an owner's eggs
type ListByOwnerInput struct {
	Owner          string
	IncubatingOnly bool
}

// ListByOwnerOutput defines the output for listing an owner's eggs
type ListByOwnerOutput struct {
	Eggs []*entities.Egg
}

// ApplyFunc mutates a freshly loaded egg. Returning an error aborts the write.
type ApplyFunc func(e *entities.Egg) error

// TransitionInput defines the input for a guarded egg update
type TransitionInput struct {
	ID    string
	Apply ApplyFunc
	// MaxIncubating caps the receiving owner's unhatched eggs when Apply
	// changes the owner; zero skips the check
	MaxIncubating int
}

// TransitionOutput defines the output for a guarded egg update
type TransitionOutput struct {
	Egg *entities.Egg
}
