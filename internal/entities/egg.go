package entities

// EggState is the lifecycle state of an egg
type EggState string

// Egg states
const (
	EggStateIncubating EggState = "incubating"
	EggStateHatched    EggState = "hatched"
)

// GeneticsLength is the number of genetic slots fixed at breeding time
const GeneticsLength = 6

// Egg is a bred precursor that hatches into a creature
type Egg struct {
	ID               string   `json:"id"`
	Parent1SpeciesID string   `json:"parent1_species_id"`
	Parent2SpeciesID string   `json:"parent2_species_id"`
	Parent1Stats     Stats    `json:"parent1_stats"`
	Parent2Stats     Stats    `json:"parent2_stats"`
	Genetics         []int32  `json:"genetics"`
	IncubationSteps  int64    `json:"incubation_steps"`
	RequiredSteps    int64    `json:"required_steps"`
	State            EggState `json:"state"`
	Owner            string   `json:"owner"`
	CreatedAt        int64    `json:"created_at"`
	HatchedAt        int64    `json:"hatched_at,omitempty"`
	HatchedInto      string   `json:"hatched_into,omitempty"`
}

// Incubating reports whether the egg has not been consumed
func (e *Egg) Incubating() bool {
	return e.State == EggStateIncubating
}

// Clone returns a deep copy
func (e *Egg) Clone() *Egg {
	if e == nil {
		return nil
	}
	out := *e
	out.Genetics = append([]int32(nil), e.Genetics...)
	return &out
}
