// Package collection serves an owner's creatures: reads, the one-time starter
// claim and healing between battles.
package collection

//go:generate mockgen -destination=mock/mock_service.go -package=collectionmock github.com/KirkDiggler/pokechain-api/internal/orchestrators/collection Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/pokechain-api/internal/catalog"
	"github.com/KirkDiggler/pokechain-api/internal/engine/progression"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/creature"
)

// StarterLevel is the level starters are minted at
const StarterLevel = 5

// Service defines the collection operations
type Service interface {
	GetCreature(ctx context.Context, input *GetCreatureInput) (*GetCreatureOutput, error)
	ListCreatures(ctx context.Context, input *ListCreaturesInput) (*ListCreaturesOutput, error)
	ClaimStarter(ctx context.Context, input *ClaimStarterInput) (*ClaimStarterOutput, error)
	Heal(ctx context.Context, input *HealInput) (*HealOutput, error)
}

// Config holds the dependencies for the collection orchestrator
type Config struct {
	CreatureRepo creature.Repository
	Catalog      *catalog.Catalog
	Progression  *progression.Engine
	IDGenerator  idgen.Generator
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
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Progression == nil {
		vb.RequiredField("Progression")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type orchestrator struct {
	creatureRepo creature.Repository
	catalog      *catalog.Catalog
	progression  *progression.Engine
	idGen        idgen.Generator
}

// NewOrchestrator creates a new collection orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		creatureRepo: cfg.CreatureRepo,
		catalog:      cfg.Catalog,
		progression:  cfg.Progression,
		idGen:        cfg.IDGenerator,
	}, nil
}

func (o *orchestrator) GetCreature(ctx context.Context, input *GetCreatureInput) (*GetCreatureOutput, error) {
	if input == nil || input.CreatureID == "" {
		return nil, errors.InvalidArgument("creature ID is required")
	}

	out, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: input.CreatureID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get creature %s", input.CreatureID)
	}
	return &GetCreatureOutput{Creature: out.Creature}, nil
}

func (o *orchestrator) ListCreatures(ctx context.Context, input *ListCreaturesInput) (*ListCreaturesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	out, err := o.creatureRepo.ListByOwner(ctx, creature.ListByOwnerInput{Owner: owner})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list creatures")
	}
	return &ListCreaturesOutput{Creatures: out.Creatures}, nil
}

func (o *orchestrator) ClaimStarter(ctx context.Context, input *ClaimStarterInput) (*ClaimStarterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	species, err := o.catalog.Species(input.SpeciesID)
	if err != nil {
		return nil, err
	}
	if species.Rarity != entities.RarityCommon {
		return nil, errors.InvalidArgumentf("species %s cannot be a starter", species.ID)
	}

	held, err := o.creatureRepo.ListByOwner(ctx, creature.ListByOwnerInput{Owner: owner})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list creatures")
	}
	if len(held.Creatures) > 0 {
		return nil, errors.FailedPreconditionf("%s already owns creatures", owner)
	}

	c, err := o.progression.Mint(species, StarterLevel, o.idGen.Generate())
	if err != nil {
		return nil, err
	}
	c.Owner = owner

	out, err := o.creatureRepo.Create(ctx, creature.CreateInput{Creature: c})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store starter")
	}

	slog.Info("Starter claimed",
		"owner", owner,
		"creature_id", c.ID,
		"species", species.ID)

	return &ClaimStarterOutput{Creature: out.Creature}, nil
}

func (o *orchestrator) Heal(ctx context.Context, input *HealInput) (*HealOutput, error) {
	if input == nil || input.CreatureID == "" {
		return nil, errors.InvalidArgument("creature ID is required")
	}

	got, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: input.CreatureID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get creature %s", input.CreatureID)
	}
	c := got.Creature
	if !entities.SameAddress(c.Owner, input.Owner) {
		return nil, errors.Unauthorizedf("creature %s is not owned by %s", c.ID, input.Owner)
	}

	c.Heal()
	out, err := o.creatureRepo.Update(ctx, creature.UpdateInput{Creature: c})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store creature")
	}
	return &HealOutput{Creature: out.Creature}, nil
}
