package breeding

import (
	"github.com/KirkDiggler/pokechain-api/internal/engine/incubation"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
)

// EggView pairs an egg with its derived incubation state
type EggView struct {
	Egg      *entities.Egg
	Progress float64
	Ready    bool
}

func newEggView(egg *entities.Egg) *EggView {
	return &EggView{
		Egg:      egg,
		Progress: incubation.Progress(egg),
		Ready:    incubation.IsReadyToHatch(egg),
	}
}

// BreedInput defines the request for breeding two owned creatures
type BreedInput struct {
	Owner     string
	Parent1ID string
	Parent2ID string
}

// BreedOutput defines the response for breeding
type BreedOutput struct {
	Egg *EggView
}

// ListEggsInput defines the request for an owner's eggs
type ListEggsInput struct {
	Owner          string
	IncubatingOnly bool
}

// ListEggsOutput defines the response for listing eggs
type ListEggsOutput struct {
	Eggs []*EggView
}

// AddStepsInput defines a direct step grant to one egg
type AddStepsInput struct {
	Owner string
	EggID string
	Steps int64
}

// AddStepsOutput defines the response for adding steps
type AddStepsOutput struct {
	Egg *EggView
}

// HatchInput defines the request for hatching an egg
type HatchInput struct {
	Owner string
	EggID string
}

// HatchOutput defines the response for hatching
type HatchOutput struct {
	Egg      *entities.Egg
	Creature *entities.Creature
}

// RecordEventInput advances every incubating egg of Owner by Source's increment
type RecordEventInput struct {
	Owner  string
	Source incubation.StepSource
}

// RecordEventOutput reports which eggs advanced
type RecordEventOutput struct {
	Eggs []*EggView
}
