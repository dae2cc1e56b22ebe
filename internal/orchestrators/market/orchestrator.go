// Package market lists, sells and cancels creature and egg NFTs.
//
// The listing repository is the source of truth for listing status; a
// purchase first wins the listing transition and only then moves the NFT and
// records the sale. A listing whose NFT cannot be delivered is put back on
// sale.
package market

//go:generate mockgen -destination=mock/mock_service.go -package=marketmock github.com/KirkDiggler/pokechain-api/internal/orchestrators/market Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/pokechain-api/internal/chain"
	"github.com/KirkDiggler/pokechain-api/internal/engine/incubation"
	"github.com/KirkDiggler/pokechain-api/internal/engine/marketplace"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/creature"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/egg"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/listing"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/sales"
)

// Service defines the marketplace operations
type Service interface {
	CreateListing(ctx context.Context, input *CreateListingInput) (*CreateListingOutput, error)
	Purchase(ctx context.Context, input *PurchaseInput) (*PurchaseOutput, error)
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)
	GetListing(ctx context.Context, input *GetListingInput) (*GetListingOutput, error)
	SearchListings(ctx context.Context, input *SearchListingsInput) (*SearchListingsOutput, error)
	SalesHistory(ctx context.Context, input *SalesHistoryInput) (*SalesHistoryOutput, error)
}

// Config holds the dependencies for the market orchestrator
type Config struct {
	ListingRepo  listing.Repository
	CreatureRepo creature.Repository
	EggRepo      egg.Repository
	SalesRepo    sales.Repository
	Ledger       *marketplace.Ledger
	// Balances is optional; without it purchases must carry a balance
	Balances chain.BalanceReader
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.ListingRepo == nil {
		vb.RequiredField("ListingRepo")
	}
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.EggRepo == nil {
		vb.RequiredField("EggRepo")
	}
	if c.SalesRepo == nil {
		vb.RequiredField("SalesRepo")
	}
	if c.Ledger == nil {
		vb.RequiredField("Ledger")
	}
	return vb.Build()
}

type orchestrator struct {
	listingRepo  listing.Repository
	creatureRepo creature.Repository
	eggRepo      egg.Repository
	salesRepo    sales.Repository
	ledger       *marketplace.Ledger
	balances     chain.BalanceReader
}

// NewOrchestrator creates a new market orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		listingRepo:  cfg.ListingRepo,
		creatureRepo: cfg.CreatureRepo,
		eggRepo:      cfg.EggRepo,
		salesRepo:    cfg.SalesRepo,
		ledger:       cfg.Ledger,
		balances:     cfg.Balances,
	}, nil
}

func (o *orchestrator) CreateListing(ctx context.Context, input *CreateListingInput) (*CreateListingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	seller, err := entities.NormalizeAddress(input.Seller)
	if err != nil {
		return nil, err
	}
	if input.NFTID == "" {
		return nil, errors.InvalidInputf("nft id is required")
	}

	var rarity entities.Rarity
	switch input.NFTKind {
	case entities.NFTKindCreature:
		c, err := o.ownedCreature(ctx, seller, input.NFTID)
		if err != nil {
			return nil, err
		}
		rarity = c.Rarity
	case entities.NFTKindEgg:
		e, err := o.ownedEgg(ctx, seller, input.NFTID)
		if err != nil {
			return nil, err
		}
		if !e.Incubating() {
			return nil, errors.AlreadyHatchedf("egg %s has already hatched", e.ID)
		}
	default:
		return nil, errors.InvalidInputf("unknown nft kind %q", input.NFTKind)
	}

	l, err := o.ledger.CreateListing(&marketplace.CreateListingInput{
		NFTID:   input.NFTID,
		NFTKind: input.NFTKind,
		Rarity:  rarity,
		Seller:  seller,
		Price:   input.Price,
	})
	if err != nil {
		return nil, err
	}

	created, err := o.listingRepo.Create(ctx, listing.CreateInput{Listing: l})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store listing")
	}

	slog.Info("Listing created",
		"listing_id", l.ID,
		"seller", seller,
		"nft_id", l.NFTID,
		"price", l.Price)

	return &CreateListingOutput{Listing: created.Listing}, nil
}

func (o *orchestrator) Purchase(ctx context.Context, input *PurchaseInput) (*PurchaseOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	buyer, err := entities.NormalizeAddress(input.Buyer)
	if err != nil {
		return nil, err
	}
	if input.ListingID == "" {
		return nil, errors.InvalidInputf("listing id is required")
	}

	balance, err := o.balanceOf(ctx, buyer, input.BuyerBalance)
	if err != nil {
		return nil, err
	}

	purchase := &marketplace.PurchaseInput{Buyer: buyer, BuyerBalance: balance}

	current, err := o.listingRepo.Get(ctx, listing.GetInput{ID: input.ListingID})
	if err != nil {
		return nil, err
	}
	// ledger rules on a copy first so their errors win over delivery checks
	if err := o.ledger.Purchase(current.Listing.Clone(), purchase); err != nil {
		return nil, err
	}
	if err := o.checkDeliverable(ctx, current.Listing, buyer); err != nil {
		return nil, err
	}

	settled, err := o.listingRepo.Transition(ctx, listing.TransitionInput{
		ID: input.ListingID,
		Apply: func(l *entities.Listing) error {
			return o.ledger.Purchase(l, purchase)
		},
	})
	if err != nil {
		return nil, err
	}
	l := settled.Listing

	if err := o.transfer(ctx, l, buyer); err != nil {
		slog.ErrorContext(ctx, "NFT transfer failed, reopening listing",
			"listing_id", l.ID,
			"nft_id", l.NFTID,
			"buyer", buyer,
			"error", err)
		o.reopen(ctx, l.ID)
		return nil, err
	}

	if _, err := o.salesRepo.Record(ctx, sales.RecordInput{Sale: sales.FromListing(l)}); err != nil {
		// the sale is settled; history can be rebuilt from sold listings
		slog.Error("Failed to record sale",
			"listing_id", l.ID,
			"error", err)
	}

	slog.Info("Listing sold",
		"listing_id", l.ID,
		"buyer", buyer,
		"price", l.Price,
		"fee", l.Fee)

	return &PurchaseOutput{Listing: l}, nil
}

func (o *orchestrator) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	requester, err := entities.NormalizeAddress(input.Requester)
	if err != nil {
		return nil, err
	}
	if input.ListingID == "" {
		return nil, errors.InvalidInputf("listing id is required")
	}

	out, err := o.listingRepo.Transition(ctx, listing.TransitionInput{
		ID: input.ListingID,
		Apply: func(l *entities.Listing) error {
			return o.ledger.Cancel(l, requester)
		},
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Listing cancelled", "listing_id", out.Listing.ID)

	return &CancelOutput{Listing: out.Listing}, nil
}

func (o *orchestrator) GetListing(ctx context.Context, input *GetListingInput) (*GetListingOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("listing id is required")
	}

	out, err := o.listingRepo.Get(ctx, listing.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}
	return &GetListingOutput{Listing: out.Listing}, nil
}

func (o *orchestrator) SearchListings(ctx context.Context, input *SearchListingsInput) (*SearchListingsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	filter := input.Filter
	if filter.Status == "" {
		filter.Status = entities.ListingStatusActive
	}
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return nil, errors.InvalidPricef("min price must not be negative, got %d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, errors.InvalidPricef("max price must not be negative, got %d", *filter.MaxPrice)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, errors.InvalidInputf("min price %d exceeds max price %d", *filter.MinPrice, *filter.MaxPrice)
	}

	var seller string
	if input.Seller != "" {
		var err error
		seller, err = entities.NormalizeAddress(input.Seller)
		if err != nil {
			return nil, err
		}
	}

	out, err := o.listingRepo.List(ctx, listing.ListInput{
		Seller:     seller,
		ActiveOnly: filter.Status == entities.ListingStatusActive,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list listings")
	}

	return &SearchListingsOutput{Listings: marketplace.Filter(out.Listings, filter)}, nil
}

func (o *orchestrator) SalesHistory(ctx context.Context, input *SalesHistoryInput) (*SalesHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	wallet := input.Wallet
	if wallet != "" {
		var err error
		wallet, err = entities.NormalizeAddress(wallet)
		if err != nil {
			return nil, err
		}
	}
	if input.Limit < 0 {
		return nil, errors.InvalidInputf("limit must not be negative, got %d", input.Limit)
	}

	out, err := o.salesRepo.List(ctx, sales.ListInput{
		Wallet: wallet,
		NFTID:  input.NFTID,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}
	return &SalesHistoryOutput{Sales: out.Sales}, nil
}

func (o *orchestrator) balanceOf(ctx context.Context, buyer string, supplied *int64) (int64, error) {
	if supplied != nil {
		return *supplied, nil
	}
	if o.balances == nil {
		return 0, errors.InvalidInputf("buyer balance is required when no chain is configured")
	}
	balance, err := o.balances.BalanceOf(ctx, buyer)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read balance of %s", buyer)
	}
	return balance, nil
}

// checkDeliverable fails fast on a listing whose NFT the seller no longer
// holds in a sellable state, or that the buyer has no room for
func (o *orchestrator) checkDeliverable(ctx context.Context, l *entities.Listing, buyer string) error {
	switch l.NFTKind {
	case entities.NFTKindCreature:
		_, err := o.heldCreature(ctx, l)
		return err
	case entities.NFTKindEgg:
		e, err := o.eggRepo.Get(ctx, egg.GetInput{ID: l.NFTID})
		if err != nil {
			return errors.Wrapf(err, "failed to get egg %s", l.NFTID)
		}
		if err := sellableEgg(l, e.Egg); err != nil {
			return err
		}
		held, err := o.eggRepo.ListByOwner(ctx, egg.ListByOwnerInput{Owner: buyer, IncubatingOnly: true})
		if err != nil {
			return errors.Wrap(err, "failed to list buyer eggs")
		}
		if n := incubation.CountIncubating(buyer, held.Eggs); n >= incubation.MaxIncubatingEggs {
			return errors.CapacityExceededf("buyer already holds %d incubating eggs", n).
				WithMeta("buyer", buyer)
		}
		return nil
	default:
		return errors.Internalf("listing %s has unknown nft kind %q", l.ID, l.NFTKind)
	}
}

// transfer moves the sold NFT to the buyer. Eggs move under the egg
// repository lock, which also rechecks the buyer's capacity.
func (o *orchestrator) transfer(ctx context.Context, l *entities.Listing, buyer string) error {
	switch l.NFTKind {
	case entities.NFTKindCreature:
		c, err := o.heldCreature(ctx, l)
		if err != nil {
			return err
		}
		c.Owner = buyer
		if _, err := o.creatureRepo.Update(ctx, creature.UpdateInput{Creature: c}); err != nil {
			return errors.Wrapf(err, "failed to transfer creature %s", l.NFTID)
		}
	case entities.NFTKindEgg:
		_, err := o.eggRepo.Transition(ctx, egg.TransitionInput{
			ID:            l.NFTID,
			MaxIncubating: incubation.MaxIncubatingEggs,
			Apply: func(e *entities.Egg) error {
				if err := sellableEgg(l, e); err != nil {
					return err
				}
				e.Owner = buyer
				return nil
			},
		})
		if err != nil {
			return errors.Wrapf(err, "failed to transfer egg %s", l.NFTID)
		}
	default:
		return errors.Internalf("listing %s has unknown nft kind %q", l.ID, l.NFTKind)
	}
	return nil
}

// reopen puts a sold listing back on sale after a failed delivery. If that
// also fails the listing stays sold and needs manual repair.
func (o *orchestrator) reopen(ctx context.Context, listingID string) {
	_, err := o.listingRepo.Transition(ctx, listing.TransitionInput{
		ID:    listingID,
		Apply: o.ledger.Reopen,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to reopen listing after transfer failure",
			"listing_id", listingID,
			"error", err)
	}
}

func (o *orchestrator) heldCreature(ctx context.Context, l *entities.Listing) (*entities.Creature, error) {
	out, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: l.NFTID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get creature %s", l.NFTID)
	}
	if !entities.SameAddress(out.Creature.Owner, l.Seller) {
		return nil, errors.NotActivef("listing %s: creature %s is no longer held by the seller", l.ID, l.NFTID)
	}
	return out.Creature, nil
}

func sellableEgg(l *entities.Listing, e *entities.Egg) error {
	if !entities.SameAddress(e.Owner, l.Seller) {
		return errors.NotActivef("listing %s: egg %s is no longer held by the seller", l.ID, e.ID)
	}
	if !e.Incubating() {
		return errors.AlreadyHatchedf("listing %s: egg %s has already hatched", l.ID, e.ID)
	}
	return nil
}

func (o *orchestrator) ownedCreature(ctx context.Context, owner, id string) (*entities.Creature, error) {
	out, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get creature %s", id)
	}
	if !entities.SameAddress(out.Creature.Owner, owner) {
		return nil, errors.Unauthorizedf("creature %s is not owned by %s", id, owner)
	}
	return out.Creature, nil
}

func (o *orchestrator) ownedEgg(ctx context.Context, owner, id string) (*entities.Egg, error) {
	out, err := o.eggRepo.Get(ctx, egg.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get egg %s", id)
	}
	if !entities.SameAddress(out.Egg.Owner, owner) {
		return nil, errors.Unauthorizedf("egg %s is not owned by %s", id, owner)
	}
	return out.Egg, nil
}
