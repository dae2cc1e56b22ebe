package incubation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokechain-api/internal/engine/incubation"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokechain-api/internal/testutils"
)

const owner = "0x00000000000000000000000000000000000000aa"

type staticSpecies map[string]*entities.Species

func (s staticSpecies) Species(id string) (*entities.Species, error) {
	sp, ok := s[id]
	if !ok {
		return nil, errors.NotFoundf("species %s not found", id)
	}
	return sp, nil
}

type TrackerTestSuite struct {
	suite.Suite
	roller  *testutils.ScriptedRoller
	clock   *clock.Fixed
	tracker *incubation.Tracker
	parent1 *entities.Creature
	parent2 *entities.Creature
}

func (s *TrackerTestSuite) SetupTest() {
	// genetics: first slot odd (face 2 -> value 1) picks parent2
	s.roller = testutils.NewScriptedRoller(2, 1, 1, 1, 1, 1)
	s.clock = clock.NewFixed(time.Unix(1_700_000_000, 0))

	var err error
	s.tracker, err = incubation.NewTracker(&incubation.Config{
		Roller: s.roller,
		Species: staticSpecies{
			"flamepup": {ID: "flamepup", Name: "Flamepup", Types: []entities.ElementType{entities.TypeFire}, Rarity: entities.RarityCommon},
			"aquafin":  {ID: "aquafin", Name: "Aquafin", Types: []entities.ElementType{entities.TypeWater}, Rarity: entities.RarityUncommon},
		},
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("egg"),
	})
	s.Require().NoError(err)

	s.parent1 = &entities.Creature{
		ID: "crt_1", SpeciesID: "flamepup", Owner: owner, Level: 10,
		Stats: entities.Stats{HP: 45, Attack: 55, Defense: 40, Speed: 60},
	}
	s.parent2 = &entities.Creature{
		ID: "crt_2", SpeciesID: "aquafin", Owner: owner, Level: 12,
		Stats: entities.Stats{HP: 50, Attack: 40, Defense: 52, Speed: 45},
	}
}

func (s *TrackerTestSuite) newEgg() *entities.Egg {
	egg, err := s.tracker.CreateEgg(&incubation.CreateEggInput{
		Owner: owner, Parent1: s.parent1, Parent2: s.parent2,
	})
	s.Require().NoError(err)
	return egg
}

func (s *TrackerTestSuite) TestNewTrackerDefaults() {
	s.Equal(int64(incubation.DefaultRequiredSteps), s.tracker.RequiredSteps())

	_, err := incubation.NewTracker(&incubation.Config{})
	s.Error(err)
}

func (s *TrackerTestSuite) TestCreateEgg() {
	egg := s.newEgg()

	s.Equal("egg_1", egg.ID)
	s.Equal(int64(0), egg.IncubationSteps)
	s.Equal(int64(1000), egg.RequiredSteps)
	s.Equal(entities.EggStateIncubating, egg.State)
	s.Equal([]int32{1, 0, 0, 0, 0, 0}, egg.Genetics)
	s.Equal("flamepup", egg.Parent1SpeciesID)
	s.Equal("aquafin", egg.Parent2SpeciesID)
	s.Equal(int64(1_700_000_000), egg.CreatedAt)
	s.Equal([]int{16, 16, 16, 16, 16, 16}, s.roller.Calls())
}

func (s *TrackerTestSuite) TestCreateEggCapacity() {
	held := []*entities.Egg{
		{ID: "a", Owner: owner, State: entities.EggStateIncubating},
		{ID: "b", Owner: owner, State: entities.EggStateIncubating},
		{ID: "c", Owner: owner, State: entities.EggStateIncubating},
	}

	_, err := s.tracker.CreateEgg(&incubation.CreateEggInput{
		Owner: owner, Parent1: s.parent1, Parent2: s.parent2, HeldEggs: held,
	})
	s.True(errors.HasReason(err, errors.ReasonCapacityExceeded))
	s.Empty(s.roller.Calls())

	// hatched eggs do not count
	held[2].State = entities.EggStateHatched
	_, err = s.tracker.CreateEgg(&incubation.CreateEggInput{
		Owner: owner, Parent1: s.parent1, Parent2: s.parent2, HeldEggs: held,
	})
	s.NoError(err)
}

func (s *TrackerTestSuite) TestCreateEggRejectsSelfBreeding() {
	_, err := s.tracker.CreateEgg(&incubation.CreateEggInput{
		Owner: owner, Parent1: s.parent1, Parent2: s.parent1,
	})
	s.True(errors.HasReason(err, errors.ReasonInvalidInput))
}

func (s *TrackerTestSuite) TestReadyAfterBattleWin() {
	egg := s.newEgg()

	s.Require().NoError(incubation.AddSteps(egg, 999))
	s.False(incubation.IsReadyToHatch(egg))

	s.Require().NoError(incubation.RecordEvent(egg, incubation.SourceBattleWin))
	s.Equal(int64(1009), egg.IncubationSteps)
	s.True(incubation.IsReadyToHatch(egg))
	s.InDelta(100.9, incubation.Progress(egg), 1e-9)
}

func (s *TrackerTestSuite) TestAddStepsRejectsNonPositive() {
	egg := s.newEgg()
	err := incubation.AddSteps(egg, 0)
	s.True(errors.HasReason(err, errors.ReasonInvalidInput))
	err = incubation.AddSteps(egg, -5)
	s.True(errors.HasReason(err, errors.ReasonInvalidInput))
}

func (s *TrackerTestSuite) TestHatchNotReady() {
	egg := s.newEgg()
	s.Require().NoError(incubation.AddSteps(egg, 500))

	_, err := s.tracker.Hatch(egg, nil)
	s.True(errors.HasReason(err, errors.ReasonNotReady))
	s.True(egg.Incubating())
}

func (s *TrackerTestSuite) TestHatch() {
	egg := s.newEgg()
	s.Require().NoError(incubation.AddSteps(egg, 1000))

	creature, err := s.tracker.Hatch(egg, nil)
	s.Require().NoError(err)

	s.Equal("aquafin", creature.SpeciesID)
	s.Equal("Aquafin", creature.Name)
	s.Equal(int32(1), creature.Level)
	s.Equal(int64(0), creature.Experience)
	s.Equal(entities.Stats{HP: 47, Attack: 47, Defense: 46, Speed: 52}, creature.Stats)
	s.Equal(creature.Stats.HP, creature.CurrentHP)
	s.Equal(owner, creature.Owner)

	s.Equal(entities.EggStateHatched, egg.State)
	s.Equal(creature.ID, egg.HatchedInto)

	_, err = s.tracker.Hatch(egg, nil)
	s.True(errors.HasReason(err, errors.ReasonAlreadyHatched))

	err = incubation.AddSteps(egg, 10)
	s.True(errors.HasReason(err, errors.ReasonAlreadyHatched))
}

func (s *TrackerTestSuite) TestHatchCustomSelector() {
	egg := s.newEgg()
	s.Require().NoError(incubation.AddSteps(egg, 1000))

	creature, err := s.tracker.Hatch(egg, func(e *entities.Egg) string { return e.Parent1SpeciesID })
	s.Require().NoError(err)
	s.Equal("flamepup", creature.SpeciesID)
}

func (s *TrackerTestSuite) TestParitySelector() {
	egg := &entities.Egg{Parent1SpeciesID: "p1", Parent2SpeciesID: "p2", Genetics: []int32{4}}
	s.Equal("p1", incubation.ParitySelector(egg))
	egg.Genetics[0] = 7
	s.Equal("p2", incubation.ParitySelector(egg))
}

func (s *TrackerTestSuite) TestStepsFor() {
	steps, err := incubation.StepsFor(incubation.SourceCapture)
	s.NoError(err)
	s.Equal(int64(5), steps)

	_, err = incubation.StepsFor("trade")
	s.Error(err)
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}
