// Package v1alpha1 handles the grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/pokechain-api/internal/catalog"
	"github.com/KirkDiggler/pokechain-api/internal/engine/incubation"
	"github.com/KirkDiggler/pokechain-api/internal/engine/marketplace"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/battle"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/breeding"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/capture"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/collection"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/market"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CollectionService collection.Service
	BattleService     battle.Service
	CaptureService    capture.Service
	BreedingService   breeding.Service
	MarketService     market.Service
	Catalog           *catalog.Catalog
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.CollectionService == nil {
		vb.RequiredField("CollectionService")
	}
	if c.BattleService == nil {
		vb.RequiredField("BattleService")
	}
	if c.CaptureService == nil {
		vb.RequiredField("CaptureService")
	}
	if c.BreedingService == nil {
		vb.RequiredField("BreedingService")
	}
	if c.MarketService == nil {
		vb.RequiredField("MarketService")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	return vb.Build()
}

// Handler implements PokechainServiceServer
type Handler struct {
	collection collection.Service
	battle     battle.Service
	capture    capture.Service
	breeding   breeding.Service
	market     market.Service
	catalog    *catalog.Catalog
}

var _ PokechainServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		collection: cfg.CollectionService,
		battle:     cfg.BattleService,
		capture:    cfg.CaptureService,
		breeding:   cfg.BreedingService,
		market:     cfg.MarketService,
		catalog:    cfg.Catalog,
	}, nil
}

func required(field, value string) error {
	if value == "" {
		return status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	return nil
}

// GetCreature returns one creature by ID
func (h *Handler) GetCreature(ctx context.Context, req *GetCreatureRequest) (*GetCreatureResponse, error) {
	if err := required("creature_id", req.CreatureID); err != nil {
		return nil, err
	}

	out, err := h.collection.GetCreature(ctx, &collection.GetCreatureInput{CreatureID: req.CreatureID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GetCreatureResponse{Creature: convertCreature(out.Creature)}, nil
}

// ListCreatures returns a wallet's collection
func (h *Handler) ListCreatures(ctx context.Context, req *ListCreaturesRequest) (*ListCreaturesResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}

	out, err := h.collection.ListCreatures(ctx, &collection.ListCreaturesInput{Owner: req.Owner})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ListCreaturesResponse{Creatures: convertCreatures(out.Creatures)}, nil
}

// ClaimStarter mints a new player's first creature
func (h *Handler) ClaimStarter(ctx context.Context, req *ClaimStarterRequest) (*ClaimStarterResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}
	if err := required("species_id", req.SpeciesID); err != nil {
		return nil, err
	}

	out, err := h.collection.ClaimStarter(ctx, &collection.ClaimStarterInput{
		Owner:     req.Owner,
		SpeciesID: req.SpeciesID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ClaimStarterResponse{Creature: convertCreature(out.Creature)}, nil
}

// HealCreature restores a creature to full HP
func (h *Handler) HealCreature(ctx context.Context, req *HealCreatureRequest) (*HealCreatureResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}
	if err := required("creature_id", req.CreatureID); err != nil {
		return nil, err
	}

	out, err := h.collection.Heal(ctx, &collection.HealInput{Owner: req.Owner, CreatureID: req.CreatureID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &HealCreatureResponse{Creature: convertCreature(out.Creature)}, nil
}

// StartEncounter spawns a wild opponent
func (h *Handler) StartEncounter(ctx context.Context, req *StartEncounterRequest) (*StartEncounterResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}
	if req.Level < 0 {
		return nil, status.Error(codes.InvalidArgument, "level must not be negative")
	}

	out, err := h.battle.StartEncounter(ctx, &battle.StartEncounterInput{
		Owner:     req.Owner,
		SpeciesID: req.SpeciesID,
		Level:     req.Level,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &StartEncounterResponse{Encounter: convertEncounter(out.Encounter)}, nil
}

// GetEncounter returns the wallet's active encounter
func (h *Handler) GetEncounter(ctx context.Context, req *GetEncounterRequest) (*GetEncounterResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}

	out, err := h.battle.GetEncounter(ctx, &battle.GetEncounterInput{Owner: req.Owner})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GetEncounterResponse{Encounter: convertEncounter(out.Encounter)}, nil
}

// ExecuteTurn resolves one exchange of attacks
func (h *Handler) ExecuteTurn(ctx context.Context, req *ExecuteTurnRequest) (*ExecuteTurnResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}
	if err := required("creature_id", req.CreatureID); err != nil {
		return nil, err
	}
	if err := required("move", req.Move); err != nil {
		return nil, err
	}

	out, err := h.battle.ExecuteTurn(ctx, &battle.ExecuteTurnInput{
		Owner:      req.Owner,
		CreatureID: req.CreatureID,
		MoveName:   req.Move,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	actions := make([]*Action, 0, len(out.Actions))
	for _, a := range out.Actions {
		actions = append(actions, convertAction(a))
	}

	return &ExecuteTurnResponse{
		Outcome:  string(out.Outcome),
		Actions:  actions,
		Creature: convertCreature(out.Player),
		Wild:     convertCreature(out.Wild),
		LevelUp:  convertLevelUp(out.LevelUp),
	}, nil
}

// Flee abandons the active encounter
func (h *Handler) Flee(ctx context.Context, req *FleeRequest) (*FleeResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}

	if _, err := h.battle.Flee(ctx, &battle.FleeInput{Owner: req.Owner}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &FleeResponse{}, nil
}

// AttemptCapture throws at the active encounter's wild creature
func (h *Handler) AttemptCapture(ctx context.Context, req *AttemptCaptureRequest) (*AttemptCaptureResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}

	out, err := h.capture.AttemptCapture(ctx, &capture.AttemptCaptureInput{Owner: req.Owner})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AttemptCaptureResponse{
		Caught:   out.Caught,
		Rate:     out.Rate,
		Creature: convertCreature(out.Creature),
	}, nil
}

// Breed creates an egg from two owned creatures
func (h *Handler) Breed(ctx context.Context, req *BreedRequest) (*BreedResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}
	if err := required("parent1_id", req.Parent1ID); err != nil {
		return nil, err
	}
	if err := required("parent2_id", req.Parent2ID); err != nil {
		return nil, err
	}

	out, err := h.breeding.Breed(ctx, &breeding.BreedInput{
		Owner:     req.Owner,
		Parent1ID: req.Parent1ID,
		Parent2ID: req.Parent2ID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &BreedResponse{Egg: convertEggView(out.Egg)}, nil
}

// ListEggs returns a wallet's eggs with progress
func (h *Handler) ListEggs(ctx context.Context, req *ListEggsRequest) (*ListEggsResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}

	out, err := h.breeding.ListEggs(ctx, &breeding.ListEggsInput{
		Owner:          req.Owner,
		IncubatingOnly: req.IncubatingOnly,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	eggs := make([]*Egg, 0, len(out.Eggs))
	for _, v := range out.Eggs {
		eggs = append(eggs, convertEggView(v))
	}
	return &ListEggsResponse{Eggs: eggs}, nil
}

// AddSteps grants incubation steps to one egg
func (h *Handler) AddSteps(ctx context.Context, req *AddStepsRequest) (*AddStepsResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}
	if err := required("egg_id", req.EggID); err != nil {
		return nil, err
	}

	out, err := h.breeding.AddSteps(ctx, &breeding.AddStepsInput{
		Owner: req.Owner,
		EggID: req.EggID,
		Steps: req.Steps,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &AddStepsResponse{Egg: convertEggView(out.Egg)}, nil
}

// HatchEgg turns a ready egg into a creature
func (h *Handler) HatchEgg(ctx context.Context, req *HatchEggRequest) (*HatchEggResponse, error) {
	if err := required("owner", req.Owner); err != nil {
		return nil, err
	}
	if err := required("egg_id", req.EggID); err != nil {
		return nil, err
	}

	out, err := h.breeding.Hatch(ctx, &breeding.HatchInput{Owner: req.Owner, EggID: req.EggID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &HatchEggResponse{
		Egg:      convertEgg(out.Egg, incubation.Progress(out.Egg), false),
		Creature: convertCreature(out.Creature),
	}, nil
}

// CreateListing offers an owned NFT for sale
func (h *Handler) CreateListing(ctx context.Context, req *CreateListingRequest) (*CreateListingResponse, error) {
	if err := required("seller_address", req.SellerAddress); err != nil {
		return nil, err
	}
	if err := required("nft_id", req.NFTID); err != nil {
		return nil, err
	}

	out, err := h.market.CreateListing(ctx, &market.CreateListingInput{
		Seller:  req.SellerAddress,
		NFTID:   req.NFTID,
		NFTKind: entities.NFTKind(req.NFTType),
		Price:   req.Price,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &CreateListingResponse{Listing: convertListing(out.Listing)}, nil
}

// PurchaseListing buys an active listing
func (h *Handler) PurchaseListing(ctx context.Context, req *PurchaseListingRequest) (*PurchaseListingResponse, error) {
	if err := required("buyer_address", req.BuyerAddress); err != nil {
		return nil, err
	}
	if err := required("listing_id", req.ListingID); err != nil {
		return nil, err
	}

	out, err := h.market.Purchase(ctx, &market.PurchaseInput{
		Buyer:        req.BuyerAddress,
		ListingID:    req.ListingID,
		BuyerBalance: req.BuyerBalance,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &PurchaseListingResponse{Listing: convertListing(out.Listing)}, nil
}

// CancelListing withdraws an active listing
func (h *Handler) CancelListing(ctx context.Context, req *CancelListingRequest) (*CancelListingResponse, error) {
	if err := required("requester", req.Requester); err != nil {
		return nil, err
	}
	if err := required("listing_id", req.ListingID); err != nil {
		return nil, err
	}

	out, err := h.market.Cancel(ctx, &market.CancelInput{Requester: req.Requester, ListingID: req.ListingID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &CancelListingResponse{Listing: convertListing(out.Listing)}, nil
}

// GetListing returns one listing
func (h *Handler) GetListing(ctx context.Context, req *GetListingRequest) (*GetListingResponse, error) {
	if err := required("listing_id", req.ListingID); err != nil {
		return nil, err
	}

	out, err := h.market.GetListing(ctx, &market.GetListingInput{ID: req.ListingID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GetListingResponse{Listing: convertListing(out.Listing)}, nil
}

// SearchListings browses the marketplace
func (h *Handler) SearchListings(ctx context.Context, req *SearchListingsRequest) (*SearchListingsResponse, error) {
	out, err := h.market.SearchListings(ctx, &market.SearchListingsInput{
		Seller: req.SellerAddress,
		Filter: marketplace.ListingFilter{
			Kind:     entities.NFTKind(req.NFTType),
			MinPrice: req.MinPrice,
			MaxPrice: req.MaxPrice,
			Rarity:   entities.Rarity(req.Rarity),
			Status:   entities.ListingStatus(req.Status),
		},
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &SearchListingsResponse{Listings: convertListings(out.Listings)}, nil
}

// GetSalesHistory returns settled sales, newest first
func (h *Handler) GetSalesHistory(ctx context.Context, req *GetSalesHistoryRequest) (*GetSalesHistoryResponse, error) {
	out, err := h.market.SalesHistory(ctx, &market.SalesHistoryInput{
		Wallet: req.Wallet,
		NFTID:  req.NFTID,
		Limit:  int(req.Limit),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	sales := make([]*Sale, 0, len(out.Sales))
	for _, s := range out.Sales {
		sales = append(sales, convertSale(s))
	}
	return &GetSalesHistoryResponse{Sales: sales}, nil
}

// ListSpecies returns the species catalog
func (h *Handler) ListSpecies(_ context.Context, _ *ListSpeciesRequest) (*ListSpeciesResponse, error) {
	all := h.catalog.ListSpecies()
	species := make([]*Species, 0, len(all))
	for _, sp := range all {
		species = append(species, convertSpecies(sp))
	}
	return &ListSpeciesResponse{Species: species}, nil
}

// ListMoves returns the move catalog
func (h *Handler) ListMoves(_ context.Context, _ *ListMovesRequest) (*ListMovesResponse, error) {
	all := h.catalog.ListMoves()
	moves := make([]*Move, 0, len(all))
	for _, m := range all {
		moves = append(moves, convertMove(m))
	}
	return &ListMovesResponse{Moves: moves}, nil
}
