// Package sales records completed marketplace sales for history queries
package sales

import (
	"context"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
)

// Sale is one settled purchase
type Sale struct {
	ListingID      string
	NFTID          string
	NFTKind        entities.NFTKind
	Seller         string
	Buyer          string
	Price          int64
	Fee            int64
	SellerProceeds int64
	SoldAt         int64
}

// FromListing builds a sale from a sold listing
func FromListing(l *entities.Listing) *Sale {
	return &Sale{
		ListingID:      l.ID,
		NFTID:          l.NFTID,
		NFTKind:        l.NFTKind,
		Seller:         l.Seller,
		Buyer:          l.Buyer,
		Price:          l.Price,
		Fee:            l.Fee,
		SellerProceeds: l.SellerProceeds,
		SoldAt:         l.SoldAt,
	}
}

// RecordInput contains the sale to store
type RecordInput struct {
	Sale *Sale
}

// RecordOutput is empty
type RecordOutput struct{}

// ListInput narrows the history. Empty fields match everything.
type ListInput struct {
	Wallet string // seller or buyer
	NFTID  string
	Limit  int
}

// ListOutput returns sales newest first
type ListOutput struct {
	Sales []*Sale
}

// Repository defines sale history storage
type Repository interface {
	// Record stores a sale. Recording the same listing twice is a no-op.
	Record(ctx context.Context, input RecordInput) (*RecordOutput, error)

	// List returns matching sales newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// DefaultLimit caps List when no limit is given
const DefaultLimit = 100
