// Package marketplace holds the listing lifecycle rules: creation, purchase
// settlement with the marketplace fee, seller cancellation and filtering.
//
// The ledger acts on listing snapshots. Guaranteeing that only one purchase
// wins a race is the job of the store that holds the authoritative record.
package marketplace

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
)

// DefaultFeePercent is the marketplace cut taken from every sale
var DefaultFeePercent = decimal.RequireFromString("2.5")

var hundred = decimal.NewFromInt(100)

// Config holds the ledger dependencies
type Config struct {
	// FeePercent defaults to DefaultFeePercent when zero
	FeePercent  decimal.Decimal
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.FeePercent.IsNegative() || c.FeePercent.GreaterThan(hundred) {
		vb.Fieldf("FeePercent", "must be between 0 and 100, got %s", c.FeePercent)
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

// Ledger applies listing transitions
type Ledger struct {
	feePercent decimal.Decimal
	clock      clock.Clock
	idGen      idgen.Generator
}

// NewLedger creates a ledger
func NewLedger(cfg *Config) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	fee := cfg.FeePercent
	if fee.IsZero() {
		fee = DefaultFeePercent
	}

	return &Ledger{
		feePercent: fee,
		clock:      cfg.Clock,
		idGen:      cfg.IDGenerator,
	}, nil
}

// FeePercent returns the configured cut
func (l *Ledger) FeePercent() decimal.Decimal {
	return l.feePercent
}

// Split returns floor(price * feePercent / 100) and the remainder for the seller
func (l *Ledger) Split(price int64) (fee, proceeds int64) {
	fee = decimal.NewFromInt(price).Mul(l.feePercent).Div(hundred).Floor().IntPart()
	return fee, price - fee
}

// CreateListingInput describes a new listing
type CreateListingInput struct {
	NFTID   string
	NFTKind entities.NFTKind
	Rarity  entities.Rarity
	Seller  string
	Price   int64
}

// CreateListing opens an active listing
func (l *Ledger) CreateListing(input *CreateListingInput) (*entities.Listing, error) {
	if input == nil {
		return nil, errors.InvalidInputf("input is required")
	}
	if input.Price <= 0 {
		return nil, errors.InvalidPricef("price must be positive, got %d", input.Price)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("NFTID", input.NFTID, vb)
	errors.ValidateRequired("Seller", input.Seller, vb)
	if !input.NFTKind.Valid() {
		vb.InvalidField("NFTKind", string(input.NFTKind))
	}
	if input.Rarity != "" && !input.Rarity.Valid() {
		vb.InvalidField("Rarity", string(input.Rarity))
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid listing").WithReason(errors.ReasonInvalidInput)
	}

	return &entities.Listing{
		ID:       l.idGen.Generate(),
		NFTID:    input.NFTID,
		NFTKind:  input.NFTKind,
		Rarity:   input.Rarity,
		Seller:   input.Seller,
		Price:    input.Price,
		Status:   entities.ListingStatusActive,
		ListedAt: l.clock.Now().Unix(),
	}, nil
}

// PurchaseInput describes a buy attempt
type PurchaseInput struct {
	Buyer        string
	BuyerBalance int64
}

// Purchase settles an active listing in place. Checks run in order: listing
// active, buyer distinct from seller, balance covers price.
func (l *Ledger) Purchase(listing *entities.Listing, input *PurchaseInput) error {
	if listing == nil || input == nil {
		return errors.InvalidInputf("listing and purchase input are required")
	}
	if input.Buyer == "" {
		return errors.InvalidInputf("buyer is required")
	}
	if listing.Status != entities.ListingStatusActive {
		return errors.NotActivef("listing %s is %s", listing.ID, listing.Status)
	}
	if entities.SameAddress(input.Buyer, listing.Seller) {
		return errors.Unauthorizedf("seller cannot buy their own listing %s", listing.ID)
	}
	if input.BuyerBalance < listing.Price {
		return errors.InsufficientBalancef("balance %d is below price %d", input.BuyerBalance, listing.Price).
			WithMeta("listing_id", listing.ID)
	}

	fee, proceeds := l.Split(listing.Price)

	listing.Status = entities.ListingStatusSold
	listing.Buyer = input.Buyer
	listing.SoldAt = l.clock.Now().Unix()
	listing.Fee = fee
	listing.SellerProceeds = proceeds
	return nil
}

// Cancel withdraws an active listing. Only the seller may cancel.
func (l *Ledger) Cancel(listing *entities.Listing, requester string) error {
	if listing == nil {
		return errors.InvalidInputf("listing is required")
	}
	if !entities.SameAddress(requester, listing.Seller) {
		return errors.Unauthorizedf("only the seller may cancel listing %s", listing.ID)
	}
	if listing.Status != entities.ListingStatusActive {
		return errors.NotActivef("listing %s is %s", listing.ID, listing.Status)
	}

	listing.Status = entities.ListingStatusCancelled
	listing.CancelledAt = l.clock.Now().Unix()
	return nil
}

// Reopen undoes a purchase whose NFT could not be delivered, returning the
// listing to active with its settlement cleared
func (l *Ledger) Reopen(listing *entities.Listing) error {
	if listing == nil {
		return errors.InvalidInputf("listing is required")
	}
	if listing.Status != entities.ListingStatusSold {
		return errors.FailedPreconditionf("listing %s is %s, not sold", listing.ID, listing.Status)
	}

	listing.Status = entities.ListingStatusActive
	listing.Buyer = ""
	listing.SoldAt = 0
	listing.Fee = 0
	listing.SellerProceeds = 0
	return nil
}
