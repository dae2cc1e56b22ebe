// Package incubation tracks egg progress, owner capacity and hatching.
package incubation

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/rng"
)

const (
	// DefaultRequiredSteps is the hatch threshold for new eggs
	DefaultRequiredSteps = 1000

	// MaxIncubatingEggs is how many unhatched eggs one owner may hold
	MaxIncubatingEggs = 3

	// GeneValues bounds each genetics slot to [0, GeneValues)
	GeneValues = 16
)

// StepSource is a gameplay event that advances incubation
type StepSource string

// Step sources and their fixed increments
const (
	SourceBattleWin StepSource = "battle_win"
	SourceCapture   StepSource = "capture"
)

var stepsBySource = map[StepSource]int64{
	SourceBattleWin: 10,
	SourceCapture:   5,
}

// StepsFor returns the increment for a source
func StepsFor(source StepSource) (int64, error) {
	steps, ok := stepsBySource[source]
	if !ok {
		return 0, errors.InvalidInputf("unknown step source %q", source)
	}
	return steps, nil
}

// SpeciesSource resolves species catalog data at hatch time
type SpeciesSource interface {
	Species(id string) (*entities.Species, error)
}

// TraitSelector picks which parent species a hatchling takes
type TraitSelector func(egg *entities.Egg) string

// ParitySelector takes the first parent's species when the first genetics
// slot is even and the second parent's when it is odd
func ParitySelector(egg *entities.Egg) string {
	if len(egg.Genetics) > 0 && egg.Genetics[0]%2 != 0 {
		return egg.Parent2SpeciesID
	}
	return egg.Parent1SpeciesID
}

// Config holds the tracker dependencies
type Config struct {
	RequiredSteps int64
	Roller        dice.Roller
	Species       SpeciesSource
	Clock         clock.Clock
	IDGenerator   idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.RequiredSteps < 0 {
		vb.Fieldf("RequiredSteps", "must not be negative, got %d", c.RequiredSteps)
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Species == nil {
		vb.RequiredField("Species")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

// Tracker applies incubation rules to egg snapshots
type Tracker struct {
	requiredSteps int64
	roller        dice.Roller
	species       SpeciesSource
	clock         clock.Clock
	idGen         idgen.Generator
}

// NewTracker creates a tracker; zero RequiredSteps selects DefaultRequiredSteps
func NewTracker(cfg *Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	required := cfg.RequiredSteps
	if required == 0 {
		required = DefaultRequiredSteps
	}

	return &Tracker{
		requiredSteps: required,
		roller:        cfg.Roller,
		species:       cfg.Species,
		clock:         cfg.Clock,
		idGen:         cfg.IDGenerator,
	}, nil
}

// RequiredSteps returns the threshold given to new eggs
func (t *Tracker) RequiredSteps() int64 {
	return t.requiredSteps
}

// CreateEggInput describes a breeding
type CreateEggInput struct {
	Owner   string
	Parent1 *entities.Creature
	Parent2 *entities.Creature
	// HeldEggs is every egg the owner currently holds, hatched or not
	HeldEggs []*entities.Egg
}

// CountIncubating returns how many of eggs belonging to owner are unhatched
func CountIncubating(owner string, eggs []*entities.Egg) int {
	n := 0
	for _, egg := range eggs {
		if egg != nil && egg.Incubating() && entities.SameAddress(egg.Owner, owner) {
			n++
		}
	}
	return n
}

// CreateEgg breeds two parents into a new egg with zero steps. Genetics are
// rolled here, once, so hatching is deterministic afterwards.
func (t *Tracker) CreateEgg(input *CreateEggInput) (*entities.Egg, error) {
	if input == nil || input.Parent1 == nil || input.Parent2 == nil {
		return nil, errors.InvalidInputf("two parents are required")
	}
	if input.Owner == "" {
		return nil, errors.InvalidInputf("owner is required")
	}
	if input.Parent1.ID != "" && input.Parent1.ID == input.Parent2.ID {
		return nil, errors.InvalidInputf("a creature cannot breed with itself")
	}
	if !input.Parent1.Stats.Positive() || !input.Parent2.Stats.Positive() {
		return nil, errors.InvalidInputf("parent stats must be positive")
	}

	if held := CountIncubating(input.Owner, input.HeldEggs); held >= MaxIncubatingEggs {
		return nil, errors.CapacityExceededf("owner already holds %d incubating eggs", held).
			WithMeta("owner", input.Owner)
	}

	genetics := make([]int32, entities.GeneticsLength)
	for i := range genetics {
		v, err := rng.Intn(t.roller, GeneValues)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll genetics")
		}
		genetics[i] = int32(v)
	}

	return &entities.Egg{
		ID:               t.idGen.Generate(),
		Parent1SpeciesID: input.Parent1.SpeciesID,
		Parent2SpeciesID: input.Parent2.SpeciesID,
		Parent1Stats:     input.Parent1.Stats,
		Parent2Stats:     input.Parent2.Stats,
		Genetics:         genetics,
		IncubationSteps:  0,
		RequiredSteps:    t.requiredSteps,
		State:            entities.EggStateIncubating,
		Owner:            input.Owner,
		CreatedAt:        t.clock.Now().Unix(),
	}, nil
}

// AddSteps advances an incubating egg
func AddSteps(egg *entities.Egg, amount int64) error {
	if egg == nil {
		return errors.InvalidInputf("egg is required")
	}
	if !egg.Incubating() {
		return errors.AlreadyHatchedf("egg %s has already hatched", egg.ID)
	}
	if amount <= 0 {
		return errors.InvalidInputf("step amount must be positive, got %d", amount)
	}
	egg.IncubationSteps += amount
	return nil
}

// RecordEvent advances an egg by the increment of source
func RecordEvent(egg *entities.Egg, source StepSource) error {
	steps, err := StepsFor(source)
	if err != nil {
		return err
	}
	return AddSteps(egg, steps)
}

// IsReadyToHatch reports whether an incubating egg reached its threshold
func IsReadyToHatch(egg *entities.Egg) bool {
	return egg != nil && egg.Incubating() && egg.IncubationSteps >= egg.RequiredSteps
}

// Progress is steps / required * 100, not capped at 100
func Progress(egg *entities.Egg) float64 {
	if egg == nil || egg.RequiredSteps <= 0 {
		return 0
	}
	return float64(egg.IncubationSteps) / float64(egg.RequiredSteps) * 100
}

// Hatch consumes a ready egg and returns the new level 1 creature. The species
// comes from selector (ParitySelector when nil); stats are the floored average
// of both parents regardless of which species was chosen.
func (t *Tracker) Hatch(egg *entities.Egg, selector TraitSelector) (*entities.Creature, error) {
	if egg == nil {
		return nil, errors.InvalidInputf("egg is required")
	}
	if !egg.Incubating() {
		return nil, errors.AlreadyHatchedf("egg %s has already hatched", egg.ID)
	}
	if egg.IncubationSteps < egg.RequiredSteps {
		return nil, errors.NotReadyf("egg %s has %d of %d steps", egg.ID, egg.IncubationSteps, egg.RequiredSteps).
			WithMeta("progress", Progress(egg))
	}

	if selector == nil {
		selector = ParitySelector
	}
	speciesID := selector(egg)
	species, err := t.species.Species(speciesID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve species %s", speciesID)
	}

	stats := AverageStats(egg.Parent1Stats, egg.Parent2Stats)
	now := t.clock.Now().Unix()
	creature := &entities.Creature{
		ID:         t.idGen.Generate(),
		SpeciesID:  species.ID,
		Name:       species.Name,
		Level:      1,
		Experience: 0,
		Stats:      stats,
		Types:      append([]entities.ElementType(nil), species.Types...),
		CurrentHP:  stats.HP,
		Owner:      egg.Owner,
		Rarity:     species.Rarity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	egg.State = entities.EggStateHatched
	egg.HatchedAt = now
	egg.HatchedInto = creature.ID

	return creature, nil
}

// AverageStats floors the per-stat mean of two blocks
func AverageStats(a, b entities.Stats) entities.Stats {
	return entities.Stats{
		HP:      (a.HP + b.HP) / 2,
		Attack:  (a.Attack + b.Attack) / 2,
		Defense: (a.Defense + b.Defense) / 2,
		Speed:   (a.Speed + b.Speed) / 2,
	}
}
