// Package listing provides the interface for marketplace listing persistence
package listing

//go:generate mockgen -destination=mock/mock_repository.go -package=listingmock github.com/KirkDiggler/pokechain-api/internal/repositories/listing Repository

import (
	"context"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
)

// Repository defines the interface for listing persistence. It is the
// authoritative record for listing status: Transition guarantees at most one
// state change wins when callers race.
type Repository interface {
	// Create stores a new active listing
	// Returns errors.AlreadyExists if the NFT already has an active listing
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a listing by ID
	// Returns errors.NotFound if the listing doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetActiveByNFT retrieves the active listing for an NFT
	// Returns errors.NotFound if the NFT is not listed
	GetActiveByNFT(ctx context.Context, input GetActiveByNFTInput) (*GetActiveByNFTOutput, error)

	// List returns listings in listing order, optionally narrowed to one
	// seller or to active listings
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Transition loads the listing, lets Apply mutate it and writes it back
	// only if nobody changed it in between. Moving a terminal listing back to
	// active fails with errors.AlreadyExists when the NFT was relisted.
	// Returns the error from Apply unchanged
	// Returns errors.Aborted when a concurrent write won
	Transition(ctx context.Context, input TransitionInput) (*TransitionOutput, error)
}

// CreateInput defines the input for creating a listing
type CreateInput struct {
	Listing *entities.Listing
}

// CreateOutput defines the output for creating a listing
type CreateOutput struct {
	Listing *entities.Listing
}

// GetInput defines the input for getting a listing
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a listing
type GetOutput struct {
	Listing *entities.Listing
}

// GetActiveByNFTInput defines the input for finding an NFT's active listing
type GetActiveByNFTInput struct {
	NFTID string
}

// GetActiveByNFTOutput defines the output for finding an NFT's active listing
type GetActiveByNFTOutput struct {
	Listing *entities.Listing
}

// ListInput defines the input for listing listings
type ListInput struct {
	Seller     string
	ActiveOnly bool
}

// ListOutput defines the output for listing listings
type ListOutput struct {
	Listings []*entities.Listing
}

// ApplyFunc mutates a freshly loaded listing. Returning an error aborts the
// write.
type ApplyFunc func(l *entities.Listing) error

// TransitionInput defines the input for a guarded listing update
type TransitionInput struct {
	ID    string
	Apply ApplyFunc
}

// TransitionOutput defines the output for a guarded listing update
type TransitionOutput struct {
	Listing *entities.Listing
}
