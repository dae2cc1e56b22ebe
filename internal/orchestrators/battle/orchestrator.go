// Package battle runs wild encounters: spawning an opponent, resolving turns
// with the damage engine and paying out experience on a win.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/pokechain-api/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokechain-api/internal/catalog"
	"github.com/KirkDiggler/pokechain-api/internal/engine/battle"
	"github.com/KirkDiggler/pokechain-api/internal/engine/progression"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/gameevents"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/rng"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/creature"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/encounter"
)

// DefaultWildLevel is used when a start request names no level
const DefaultWildLevel = 5

// Service defines the battle operations
type Service interface {
	StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error)
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)
	ExecuteTurn(ctx context.Context, input *ExecuteTurnInput) (*ExecuteTurnOutput, error)
	Flee(ctx context.Context, input *FleeInput) (*FleeOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	CreatureRepo  creature.Repository
	EncounterRepo encounter.Repository
	Catalog       *catalog.Catalog
	Calculator    *battle.Calculator
	Progression   *progression.Engine
	// Roller picks wild species and wild moves
	Roller      dice.Roller
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	// EncounterTTL bounds an idle encounter; zero uses the repository default
	EncounterTTL time.Duration
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
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Calculator == nil {
		vb.RequiredField("Calculator")
	}
	if c.Progression == nil {
		vb.RequiredField("Progression")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EncounterTTL < 0 {
		vb.Fieldf("EncounterTTL", "must not be negative, got %s", c.EncounterTTL)
	}
	return vb.Build()
}

type orchestrator struct {
	creatureRepo  creature.Repository
	encounterRepo encounter.Repository
	catalog       *catalog.Catalog
	calculator    *battle.Calculator
	progression   *progression.Engine
	roller        dice.Roller
	bus           events.EventBus
	idGen         idgen.Generator
	encounterTTL  time.Duration
}

// NewOrchestrator creates a new battle orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		creatureRepo:  cfg.CreatureRepo,
		encounterRepo: cfg.EncounterRepo,
		catalog:       cfg.Catalog,
		calculator:    cfg.Calculator,
		progression:   cfg.Progression,
		roller:        cfg.Roller,
		bus:           cfg.EventBus,
		idGen:         cfg.IDGenerator,
		encounterTTL:  cfg.EncounterTTL,
	}, nil
}

func (o *orchestrator) StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	level := input.Level
	if level == 0 {
		level = DefaultWildLevel
	}

	species, err := o.pickSpecies(input.SpeciesID)
	if err != nil {
		return nil, err
	}

	wild, err := o.progression.Mint(species, level, o.idGen.Generate())
	if err != nil {
		return nil, errors.Wrap(err, "failed to spawn wild creature")
	}

	out, err := o.encounterRepo.Start(ctx, encounter.SaveInput{
		Encounter: &encounter.Encounter{Owner: owner, Wild: wild},
		TTL:       o.encounterTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start encounter")
	}

	slog.Info("Wild encounter started",
		"owner", owner,
		"species", species.ID,
		"level", level)

	return &StartEncounterOutput{Encounter: out.Encounter}, nil
}

func (o *orchestrator) GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	out, err := o.encounterRepo.Get(ctx, encounter.GetInput{Owner: owner})
	if err != nil {
		return nil, err
	}
	return &GetEncounterOutput{Encounter: out.Encounter}, nil
}

// ExecuteTurn resolves one exchange. The wild move is drawn first, then the
// faster creature attacks (the wild creature wins speed ties), then the other
// attacks if it is still standing.
func (o *orchestrator) ExecuteTurn(ctx context.Context, input *ExecuteTurnInput) (*ExecuteTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	got, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: input.CreatureID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get creature %s", input.CreatureID)
	}
	player := got.Creature
	if !entities.SameAddress(player.Owner, owner) {
		return nil, errors.Unauthorizedf("creature %s is not owned by %s", player.ID, owner)
	}
	if player.Fainted() {
		return nil, errors.FailedPreconditionf("creature %s has fainted", player.ID)
	}

	playerMove, err := o.moveFor(player.SpeciesID, input.MoveName)
	if err != nil {
		return nil, err
	}

	enc, err := o.encounterRepo.Get(ctx, encounter.GetInput{Owner: owner})
	if err != nil {
		return nil, err
	}
	wild := enc.Encounter.Wild

	wildMove, err := o.randomMove(wild.SpeciesID)
	if err != nil {
		return nil, err
	}

	moves := map[string]*entities.Move{player.ID: playerMove, wild.ID: wildMove}
	first, second := battle.TurnOrder(player, wild)

	output := &ExecuteTurnOutput{Outcome: OutcomeOngoing}
	for _, pair := range [][2]*entities.Creature{{first, second}, {second, first}} {
		attacker, defender := pair[0], pair[1]
		if attacker.Fainted() {
			break
		}
		result, err := o.calculator.ComputeDamage(attacker, defender, moves[attacker.ID])
		if err != nil {
			return nil, errors.Wrap(err, "failed to compute damage")
		}
		defender.ApplyDamage(result.Damage)
		output.Actions = append(output.Actions, &Action{
			AttackerID: attacker.ID,
			DefenderID: defender.ID,
			Move:       moves[attacker.ID],
			Result:     result,
			DefenderHP: defender.CurrentHP,
		})
		if defender.Fainted() {
			break
		}
	}

	switch {
	case wild.Fainted():
		output.Outcome = OutcomeWon
		xp, err := progression.AwardExperience(player.Level, wild.Level)
		if err != nil {
			return nil, err
		}
		output.LevelUp, err = o.progression.GrantExperience(player, xp)
		if err != nil {
			return nil, err
		}
	case player.Fainted():
		output.Outcome = OutcomeLost
	}

	if _, err := o.creatureRepo.Update(ctx, creature.UpdateInput{Creature: player}); err != nil {
		return nil, errors.Wrap(err, "failed to store creature")
	}

	if output.Outcome == OutcomeOngoing {
		enc.Encounter.Turns++
		if _, err := o.encounterRepo.Update(ctx, encounter.SaveInput{Encounter: enc.Encounter}); err != nil {
			return nil, errors.Wrap(err, "failed to store encounter")
		}
	} else {
		if _, err := o.encounterRepo.Delete(ctx, encounter.DeleteInput{Owner: owner}); err != nil {
			return nil, errors.Wrap(err, "failed to end encounter")
		}
	}

	if output.Outcome == OutcomeWon {
		slog.Info("Battle won",
			"owner", owner,
			"creature_id", player.ID,
			"experience", output.LevelUp.ExperienceGained,
			"level", player.Level)

		if err := o.bus.Publish(ctx, gameevents.NewBattleWon(owner, player.ID)); err != nil {
			// the win is already stored; subscribers failing must not undo it
			slog.Error("Failed to publish battle win",
				"owner", owner,
				"error", err)
		}
	}

	output.Player = player
	output.Wild = wild
	return output, nil
}

func (o *orchestrator) Flee(ctx context.Context, input *FleeInput) (*FleeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	owner, err := entities.NormalizeAddress(input.Owner)
	if err != nil {
		return nil, err
	}

	if _, err := o.encounterRepo.Delete(ctx, encounter.DeleteInput{Owner: owner}); err != nil {
		return nil, errors.Wrap(err, "failed to end encounter")
	}
	return &FleeOutput{}, nil
}

func (o *orchestrator) pickSpecies(id string) (*entities.Species, error) {
	if id != "" {
		return o.catalog.Species(id)
	}
	all := o.catalog.ListSpecies()
	if len(all) == 0 {
		return nil, errors.Internal("catalog has no species")
	}
	i, err := rng.Intn(o.roller, len(all))
	if err != nil {
		return nil, err
	}
	return all[i], nil
}

func (o *orchestrator) moveFor(speciesID, name string) (*entities.Move, error) {
	if name == "" {
		return nil, errors.InvalidArgument("move name is required")
	}
	if !o.catalog.Knows(speciesID, name) {
		return nil, errors.InvalidArgumentf("species %s cannot use %s", speciesID, name)
	}
	return o.catalog.Move(name)
}

func (o *orchestrator) randomMove(speciesID string) (*entities.Move, error) {
	species, err := o.catalog.Species(speciesID)
	if err != nil {
		return nil, err
	}
	if len(species.Moves) == 0 {
		return nil, errors.Internalf("species %s has no moves", speciesID)
	}
	i, err := rng.Intn(o.roller, len(species.Moves))
	if err != nil {
		return nil, err
	}
	return o.catalog.Move(species.Moves[i])
}
