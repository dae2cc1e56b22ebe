// Package capture tries to catch the wild creature of a player's encounter.
package capture

//go:generate mockgen -destination=mock/mock_service.go -package=capturemock github.com/KirkDiggler/pokechain-api/internal/orchestrators/capture Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	enginecapture "github.com/KirkDiggler/pokechain-api/internal/engine/capture"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/gameevents"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/creature"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/encounter"
)

// AttemptCaptureInput defines the request for throwing at the wild creature
type AttemptCaptureInput struct {
	Owner string
}

// AttemptCaptureOutput defines the result of a capture attempt.
// Creature is set only when the attempt succeeded.
type AttemptCaptureOutput struct {
	Caught   bool
	Rate     float64
	Creature *entities.Creature
}

// Service defines the capture operations
type Service interface {
	AttemptCapture(ctx context.Context, input *AttemptCaptureInput) (*AttemptCaptureOutput, error)
}

// Config holds the dependencies for the capture orchestrator
type Config struct {
	CreatureRepo  creature.Repository
	EncounterRepo encounter.Repository
	Engine        *enginecapture.Engine
	EventBus      events.EventBus
	IDGenerator   idgen.Generator
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
	if c.EncounterRepo == nil {
		vb.RequiredField("EncounterRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type orchestrator struct {
	creatureRepo  creature.Repository
	encounterRepo encounter.Repository
	engine        *enginecapture.Engine
	bus           events.EventBus
	idGen         idgen.Generator
}

// NewOrchestrator creates a new capture orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		creatureRepo:  cfg.CreatureRepo,
		encounterRepo: cfg.EncounterRepo,
		engine:        cfg.Engine,
		bus:           cfg.EventBus,
		idGen:         cfg.IDGenerator,
	}, nil
}

// AttemptCapture rolls once against the wild creature's capture rate. A
// failed attempt leaves the encounter in place; a successful one ends it.
func (o *orchestrator) AttemptCapture(ctx context.Context, input *AttemptCaptureInput) (*AttemptCaptureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	enc, err := o.encounterRepo.Get(ctx, encounter.GetInput{Owner: owner})
	if err != nil {
		return nil, err
	}
	wild := enc.Encounter.Wild
	if wild == nil {
		return nil, errors.Internalf("encounter for %s has no wild creature", owner)
	}

	rate, err := enginecapture.CalculateCaptureRate(wild.Rarity, wild.HPFraction())
	if err != nil {
		return nil, err
	}
	caught, err := o.engine.AttemptCapture(rate)
	if err != nil {
		return nil, err
	}

	slog.Info("Capture attempted",
		"owner", owner,
		"species", wild.SpeciesID,
		"rate", rate,
		"caught", caught)

	if !caught {
		return &AttemptCaptureOutput{Rate: rate}, nil
	}

	captured := wild.Clone()
	captured.ID = o.idGen.Generate()
	captured.Owner = owner

	created, err := o.creatureRepo.Create(ctx, creature.CreateInput{Creature: captured})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store captured creature")
	}

	if _, err := o.encounterRepo.Delete(ctx, encounter.DeleteInput{Owner: owner}); err != nil {
		return nil, errors.Wrap(err, "failed to end encounter")
	}

	if err := o.bus.Publish(ctx, gameevents.NewCreatureCaptured(owner, created.Creature.ID)); err != nil {
		slog.Error("Failed to publish capture",
			"owner", owner,
			"error", err)
	}

	return &AttemptCaptureOutput{
		Caught:   true,
		Rate:     rate,
		Creature: created.Creature,
	}, nil
}
