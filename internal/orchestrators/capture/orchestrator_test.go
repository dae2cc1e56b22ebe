package capture_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	enginecapture "github.com/KirkDiggler/pokechain-api/internal/engine/capture"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/gameevents"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/capture"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/rng"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/creature"
	creaturemock "github.com/KirkDiggler/pokechain-api/internal/repositories/creature/mock"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/encounter"
	encountermock "github.com/KirkDiggler/pokechain-api/internal/repositories/encounter/mock"
	"github.com/KirkDiggler/pokechain-api/internal/testutils"
)

const owner = "0x00000000000000000000000000000000000000aa"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockCreature  *creaturemock.MockRepository
	mockEncounter *encountermock.MockRepository
	bus           events.EventBus
	captured      []events.Event
	ctx           context.Context
	owner         string
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCreature = creaturemock.NewMockRepository(s.ctrl)
	s.mockEncounter = encountermock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.captured = nil

	s.bus = events.NewBus()
	s.bus.SubscribeFunc(gameevents.CreatureCaptured, 0, func(_ context.Context, e events.Event) error {
		s.captured = append(s.captured, e)
		return nil
	})

	var err error
	s.owner, err = entities.NormalizeAddress(owner)
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) newOrchestrator(faces ...int) capture.Service {
	engine, err := enginecapture.NewEngine(testutils.NewScriptedRoller(faces...))
	s.Require().NoError(err)

	svc, err := capture.NewOrchestrator(&capture.Config{
		CreatureRepo:  s.mockCreature,
		EncounterRepo: s.mockEncounter,
		Engine:        engine,
		EventBus:      s.bus,
		IDGenerator:   idgen.NewSequential("crt"),
	})
	s.Require().NoError(err)
	return svc
}

// expectHalfHealthCommon sets up a common wild creature at half health,
// which has a capture rate of 0.6 * (1.5 - 0.5) = 0.6
func (s *OrchestratorTestSuite) expectHalfHealthCommon() {
	s.mockEncounter.EXPECT().
		Get(s.ctx, encounter.GetInput{Owner: s.owner}).
		Return(&encounter.GetOutput{Encounter: &encounter.Encounter{
			Owner: s.owner,
			Wild: &entities.Creature{
				ID:        "wild_1",
				SpeciesID: "flamepup",
				Level:     4,
				Stats:     entities.Stats{HP: 30, Attack: 10, Defense: 10, Speed: 10},
				CurrentHP: 15,
				Rarity:    entities.RarityCommon,
			},
		}}, nil)
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidates() {
	_, err := capture.NewOrchestrator(&capture.Config{})
	s.Error(err)
}

func (s *OrchestratorTestSuite) TestCaught() {
	svc := s.newOrchestrator(rng.RollFor(0.5))
	s.expectHalfHealthCommon()
	s.mockCreature.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in creature.CreateInput) (*creature.CreateOutput, error) {
			return &creature.CreateOutput{Creature: in.Creature}, nil
		})
	s.mockEncounter.EXPECT().
		Delete(s.ctx, encounter.DeleteInput{Owner: s.owner}).
		Return(&encounter.DeleteOutput{}, nil)

	out, err := svc.AttemptCapture(s.ctx, &capture.AttemptCaptureInput{Owner: owner})
	s.Require().NoError(err)
	s.True(out.Caught)
	s.InDelta(0.6, out.Rate, 1e-9)
	s.Require().NotNil(out.Creature)
	s.Equal("crt_1", out.Creature.ID)
	s.Equal(s.owner, out.Creature.Owner)
	s.Equal("flamepup", out.Creature.SpeciesID)
	s.Equal(int32(15), out.Creature.CurrentHP)

	s.Require().Len(s.captured, 1)
	s.Equal(s.owner, gameevents.Owner(s.captured[0]))
	s.Equal("crt_1", s.captured[0].Target().GetID())
}

func (s *OrchestratorTestSuite) TestEscaped() {
	svc := s.newOrchestrator(rng.RollFor(0.75))
	s.expectHalfHealthCommon()

	out, err := svc.AttemptCapture(s.ctx, &capture.AttemptCaptureInput{Owner: owner})
	s.Require().NoError(err)
	s.False(out.Caught)
	s.Nil(out.Creature)
	s.Empty(s.captured)
}

func (s *OrchestratorTestSuite) TestNoEncounter() {
	svc := s.newOrchestrator()
	s.mockEncounter.EXPECT().
		Get(s.ctx, encounter.GetInput{Owner: s.owner}).
		Return(nil, errors.NotFound("no encounter"))

	_, err := svc.AttemptCapture(s.ctx, &capture.AttemptCaptureInput{Owner: owner})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestBadAddress() {
	svc := s.newOrchestrator()
	_, err := svc.AttemptCapture(s.ctx, &capture.AttemptCaptureInput{Owner: "misty"})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
