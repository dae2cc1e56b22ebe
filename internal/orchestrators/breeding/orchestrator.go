// Package breeding turns pairs of owned creatures into eggs and eggs into
// hatchlings. Eggs advance from direct step grants and from gameplay events
// delivered over the event bus.
package breeding

//go:generate mockgen -destination=mock/mock_service.go -package=breedingmock github.com/KirkDiggler/pokechain-api/internal/orchestrators/breeding Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/pokechain-api/internal/engine/incubation"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/creature"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/egg"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/listing"
)

// Service defines the breeding operations
type Service interface {
	Breed(ctx context.Context, input *BreedInput) (*BreedOutput, error)
	ListEggs(ctx context.Context, input *ListEggsInput) (*ListEggsOutput, error)
	AddSteps(ctx context.Context, input *AddStepsInput) (*AddStepsOutput, error)
	Hatch(ctx context.Context, input *HatchInput) (*HatchOutput, error)
	RecordEvent(ctx context.Context, input *RecordEventInput) (*RecordEventOutput, error)
}

// Config holds the dependencies for the breeding orchestrator
type Config struct {
	CreatureRepo creature.Repository
	EggRepo      egg.Repository
	// ListingRepo blocks hatching eggs that are up for sale
	ListingRepo listing.Repository
	Tracker     *incubation.Tracker
	// Selector picks the hatchling species; nil uses incubation.ParitySelector
	Selector incubation.TraitSelector
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.EggRepo == nil {
		vb.RequiredField("EggRepo")
	}
	if c.ListingRepo == nil {
		vb.RequiredField("ListingRepo")
	}
	if c.Tracker == nil {
		vb.RequiredField("Tracker")
	}
	return vb.Build()
}

type orchestrator struct {
	creatureRepo creature.Repository
	eggRepo      egg.Repository
	listingRepo  listing.Repository
	tracker      *incubation.Tracker
	selector     incubation.TraitSelector
}

// NewOrchestrator creates a new breeding orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	selector := cfg.Selector
	if selector == nil {
		selector = incubation.ParitySelector
	}

	return &orchestrator{
		creatureRepo: cfg.CreatureRepo,
		eggRepo:      cfg.EggRepo,
		listingRepo:  cfg.ListingRepo,
		tracker:      cfg.Tracker,
		selector:     selector,
	}, nil
}

func (o *orchestrator) Breed(ctx context.Context, input *BreedInput) (*BreedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}
	if input.Parent1ID == "" || input.Parent2ID == "" {
		return nil, errors.InvalidInputf("both parent IDs are required")
	}

	parent1, err := o.ownedCreature(ctx, owner, input.Parent1ID)
	if err != nil {
		return nil, err
	}
	parent2, err := o.ownedCreature(ctx, owner, input.Parent2ID)
	if err != nil {
		return nil, err
	}

	held, err := o.eggRepo.ListByOwner(ctx, egg.ListByOwnerInput{Owner: owner, IncubatingOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list eggs")
	}

	newEgg, err := o.tracker.CreateEgg(&incubation.CreateEggInput{
		Owner:    owner,
		Parent1:  parent1,
		Parent2:  parent2,
		HeldEggs: held.Eggs,
	})
	if err != nil {
		return nil, err
	}

	// the repository recounts under its lock; the check above only fails fast
	created, err := o.eggRepo.Create(ctx, egg.CreateInput{
		Egg:           newEgg,
		MaxIncubating: incubation.MaxIncubatingEggs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store egg")
	}

	slog.Info("Egg created",
		"owner", owner,
		"egg_id", created.Egg.ID,
		"parent1", parent1.SpeciesID,
		"parent2", parent2.SpeciesID)

	return &BreedOutput{Egg: newEggView(created.Egg)}, nil
}

func (o *orchestrator) ListEggs(ctx context.Context, input *ListEggsInput) (*ListEggsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	out, err := o.eggRepo.ListByOwner(ctx, egg.ListByOwnerInput{
		Owner:          owner,
		IncubatingOnly: input.IncubatingOnly,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list eggs")
	}

	views := make([]*EggView, 0, len(out.Eggs))
	for _, e := range out.Eggs {
		views = append(views, newEggView(e))
	}
	return &ListEggsOutput{Eggs: views}, nil
}

func (o *orchestrator) AddSteps(ctx context.Context, input *AddStepsInput) (*AddStepsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	updated, err := o.updateOwnedEgg(ctx, owner, input.EggID, func(e *entities.Egg) error {
		return incubation.AddSteps(e, input.Steps)
	})
	if err != nil {
		return nil, err
	}
	return &AddStepsOutput{Egg: newEggView(updated)}, nil
}

// Hatch marks the egg hatched under the repository lock, so concurrent calls
// mint at most one creature. If the hatchling cannot be stored the egg is put
// back to incubating.
func (o *orchestrator) Hatch(ctx context.Context, input *HatchInput) (*HatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}
	if input.EggID == "" {
		return nil, errors.InvalidInputf("egg ID is required")
	}

	if err := o.ensureUnlisted(ctx, input.EggID); err != nil {
		return nil, err
	}

	var hatchling *entities.Creature
	hatched, err := o.updateOwnedEgg(ctx, owner, input.EggID, func(e *entities.Egg) error {
		c, err := o.tracker.Hatch(e, o.selector)
		if err != nil {
			return err
		}
		hatchling = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := o.creatureRepo.Create(ctx, creature.CreateInput{Creature: hatchling})
	if err != nil {
		o.restoreEgg(ctx, hatched.ID, hatchling.ID)
		return nil, errors.Wrap(err, "failed to store hatchling")
	}

	slog.Info("Egg hatched",
		"owner", owner,
		"egg_id", hatched.ID,
		"creature_id", created.Creature.ID,
		"species", created.Creature.SpeciesID)

	return &HatchOutput{Egg: hatched, Creature: created.Creature}, nil
}

func (o *orchestrator) RecordEvent(ctx context.Context, input *RecordEventInput) (*RecordEventOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}
	if _, err := incubation.StepsFor(input.Source); err != nil {
		return nil, err
	}

	held, err := o.eggRepo.ListByOwner(ctx, egg.ListByOwnerInput{Owner: owner, IncubatingOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list eggs")
	}

	output := &RecordEventOutput{}
	for _, e := range held.Eggs {
		updated, err := o.updateOwnedEgg(ctx, owner, e.ID, func(e *entities.Egg) error {
			return incubation.RecordEvent(e, input.Source)
		})
		if err != nil {
			// hatched or sold since the listing above
			if errors.HasReason(err, errors.ReasonAlreadyHatched) || errors.HasReason(err, errors.ReasonUnauthorized) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to store egg %s", e.ID)
		}
		output.Eggs = append(output.Eggs, newEggView(updated))
	}
	return output, nil
}

// updateOwnedEgg applies fn to the stored egg under the repository lock after
// checking owner still holds it
func (o *orchestrator) updateOwnedEgg(ctx context.Context, owner, id string, fn func(e *entities.Egg) error) (*entities.Egg, error) {
	if id == "" {
		return nil, errors.InvalidInputf("egg ID is required")
	}
	out, err := o.eggRepo.Transition(ctx, egg.TransitionInput{
		ID: id,
		Apply: func(e *entities.Egg) error {
			if !entities.SameAddress(e.Owner, owner) {
				return errors.Unauthorizedf("egg %s is not owned by %s", id, owner)
			}
			return fn(e)
		},
	})
	if err != nil {
		return nil, err
	}
	return out.Egg, nil
}

func (o *orchestrator) ensureUnlisted(ctx context.Context, eggID string) error {
	out, err := o.listingRepo.GetActiveByNFT(ctx, listing.GetActiveByNFTInput{NFTID: eggID})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to check listing for egg %s", eggID)
	}
	return errors.Listedf("egg %s is listed for sale as %s", eggID, out.Listing.ID).
		WithMeta("listing_id", out.Listing.ID)
}

// restoreEgg reverts a hatch whose creature was never stored
func (o *orchestrator) restoreEgg(ctx context.Context, eggID, creatureID string) {
	_, err := o.eggRepo.Transition(ctx, egg.TransitionInput{
		ID: eggID,
		Apply: func(e *entities.Egg) error {
			if e.HatchedInto != creatureID {
				return errors.FailedPreconditionf("egg %s hatched into %s, not %s", eggID, e.HatchedInto, creatureID)
			}
			e.State = entities.EggStateIncubating
			e.HatchedAt = 0
			e.HatchedInto = ""
			return nil
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to restore egg after hatch failure",
			"egg_id", eggID,
			"creature_id", creatureID,
			"error", err)
	}
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
