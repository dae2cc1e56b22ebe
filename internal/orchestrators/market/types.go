package market

import (
	"github.com/KirkDiggler/pokechain-api/internal/engine/marketplace"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/sales"
)

// CreateListingInput defines the request for offering an owned NFT
type CreateListingInput struct {
	Seller  string
	NFTID   string
	NFTKind entities.NFTKind
	Price   int64
}

// CreateListingOutput defines the response for creating a listing
type CreateListingOutput struct {
	Listing *entities.Listing
}

// PurchaseInput defines a buy request. A nil BuyerBalance is read from the
// chain.
type PurchaseInput struct {
	Buyer        string
	ListingID    string
	BuyerBalance *int64
}

// PurchaseOutput defines the settled listing
type PurchaseOutput struct {
	Listing *entities.Listing
}

// CancelInput defines the request for withdrawing a listing
type CancelInput struct {
	Requester string
	ListingID string
}

// CancelOutput defines the cancelled listing
type CancelOutput struct {
	Listing *entities.Listing
}

// GetListingInput defines the request for one listing
type GetListingInput struct {
	ID string
}

// GetListingOutput defines the response for one listing
type GetListingOutput struct {
	Listing *entities.Listing
}

// SearchListingsInput narrows the browse view. Without a status only active
// listings are returned.
type SearchListingsInput struct {
	Seller string
	Filter marketplace.ListingFilter
}

// SearchListingsOutput returns matches in listing order
type SearchListingsOutput struct {
	Listings []*entities.Listing
}

// SalesHistoryInput narrows the sale history. Empty fields match everything.
type SalesHistoryInput struct {
	Wallet string
	NFTID  string
	Limit  int
}

// SalesHistoryOutput returns sales newest first
type SalesHistoryOutput struct {
	Sales []*sales.Sale
}
