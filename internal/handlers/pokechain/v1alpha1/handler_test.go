package v1alpha1_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/pokechain-api/internal/catalog"
	enginebattle "github.com/KirkDiggler/pokechain-api/internal/engine/battle"
	"github.com/KirkDiggler/pokechain-api/internal/engine/marketplace"
	"github.com/KirkDiggler/pokechain-api/internal/engine/progression"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/battle"
	battlemock "github.com/KirkDiggler/pokechain-api/internal/orchestrators/battle/mock"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/breeding"
	breedingmock "github.com/KirkDiggler/pokechain-api/internal/orchestrators/breeding/mock"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/capture"
	capturemock "github.com/KirkDiggler/pokechain-api/internal/orchestrators/capture/mock"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/collection"
	collectionmock "github.com/KirkDiggler/pokechain-api/internal/orchestrators/collection/mock"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/market"
	marketmock "github.com/KirkDiggler/pokechain-api/internal/orchestrators/market/mock"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/encounter"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/sales"
)

const (
	owner = "0x00000000000000000000000000000000000000aa"
	buyer = "0x00000000000000000000000000000000000000bb"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockCollection *collectionmock.MockService
	mockBattle     *battlemock.MockService
	mockCapture    *capturemock.MockService
	mockBreeding   *breedingmock.MockService
	mockMarket     *marketmock.MockService
	handler        *v1alpha1.Handler
	ctx            context.Context
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCollection = collectionmock.NewMockService(s.ctrl)
	s.mockBattle = battlemock.NewMockService(s.ctrl)
	s.mockCapture = capturemock.NewMockService(s.ctrl)
	s.mockBreeding = breedingmock.NewMockService(s.ctrl)
	s.mockMarket = marketmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	cat, err := catalog.Default()
	s.Require().NoError(err)

	s.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CollectionService: s.mockCollection,
		BattleService:     s.mockBattle,
		CaptureService:    s.mockCapture,
		BreedingService:   s.mockBreeding,
		MarketService:     s.mockMarket,
		Catalog:           cat,
	})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) requireCode(err error, code codes.Code) *status.Status {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(code, st.Code())
	return st
}

func (s *HandlerTestSuite) TestNewHandlerValidates() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Error(err)
}

func (s *HandlerTestSuite) TestGetCreature() {
	s.mockCollection.EXPECT().
		GetCreature(s.ctx, &collection.GetCreatureInput{CreatureID: "crt_1"}).
		Return(&collection.GetCreatureOutput{Creature: &entities.Creature{
			ID:        "crt_1",
			SpeciesID: "flamepup",
			Level:     5,
			Stats:     entities.Stats{HP: 60, Attack: 70, Defense: 55, Speed: 80},
			Types:     []entities.ElementType{entities.TypeFire},
			CurrentHP: 41,
			Owner:     owner,
			Rarity:    entities.RarityCommon,
		}}, nil)

	resp, err := s.handler.GetCreature(s.ctx, &v1alpha1.GetCreatureRequest{CreatureID: "crt_1"})
	s.Require().NoError(err)
	s.Equal("crt_1", resp.Creature.ID)
	s.Equal([]string{"fire"}, resp.Creature.Types)
	s.Equal(int32(41), resp.Creature.CurrentHP)
	s.Equal("common", resp.Creature.Rarity)
}

func (s *HandlerTestSuite) TestGetCreatureNotFound() {
	s.mockCollection.EXPECT().
		GetCreature(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("creature crt_9 not found"))

	_, err := s.handler.GetCreature(s.ctx, &v1alpha1.GetCreatureRequest{CreatureID: "crt_9"})
	s.requireCode(err, codes.NotFound)
}

func (s *HandlerTestSuite) TestRequiredFields() {
	testCases := []struct {
		name string
		call func() error
		msg  string
	}{
		{
			name: "get creature",
			call: func() error {
				_, err := s.handler.GetCreature(s.ctx, &v1alpha1.GetCreatureRequest{})
				return err
			},
			msg: "creature_id is required",
		},
		{
			name: "execute turn",
			call: func() error {
				_, err := s.handler.ExecuteTurn(s.ctx, &v1alpha1.ExecuteTurnRequest{Owner: owner, CreatureID: "crt_1"})
				return err
			},
			msg: "move is required",
		},
		{
			name: "breed",
			call: func() error {
				_, err := s.handler.Breed(s.ctx, &v1alpha1.BreedRequest{Owner: owner, Parent1ID: "crt_1"})
				return err
			},
			msg: "parent2_id is required",
		},
		{
			name: "purchase",
			call: func() error {
				_, err := s.handler.PurchaseListing(s.ctx, &v1alpha1.PurchaseListingRequest{ListingID: "lst_1"})
				return err
			},
			msg: "buyer_address is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			st := s.requireCode(tc.call(), codes.InvalidArgument)
			s.Contains(st.Message(), tc.msg)
		})
	}
}

func (s *HandlerTestSuite) TestExecuteTurn() {
	ember := &entities.Move{Name: "ember", Type: entities.TypeFire, Power: 40, Accuracy: 1}
	s.mockBattle.EXPECT().
		ExecuteTurn(s.ctx, &battle.ExecuteTurnInput{Owner: owner, CreatureID: "crt_1", MoveName: "ember"}).
		Return(&battle.ExecuteTurnOutput{
			Outcome: battle.OutcomeWon,
			Actions: []*battle.Action{{
				AttackerID: "crt_1",
				DefenderID: "wild_1",
				Move:       ember,
				Result:     &enginebattle.DamageResult{Damage: 16, BaseDamage: 8, Effectiveness: 2},
				DefenderHP: 0,
			}},
			Player:  &entities.Creature{ID: "crt_1", Level: 11},
			Wild:    &entities.Creature{ID: "wild_1"},
			LevelUp: &progression.LevelUpResult{ExperienceGained: 35, OldLevel: 10, NewLevel: 11},
		}, nil)

	resp, err := s.handler.ExecuteTurn(s.ctx, &v1alpha1.ExecuteTurnRequest{Owner: owner, CreatureID: "crt_1", Move: "ember"})
	s.Require().NoError(err)
	s.Equal("won", resp.Outcome)
	s.Require().Len(resp.Actions, 1)
	s.Equal("ember", resp.Actions[0].Move)
	s.Equal(int32(16), resp.Actions[0].Damage)
	s.Equal(2.0, resp.Actions[0].Effectiveness)
	s.Require().NotNil(resp.LevelUp)
	s.Equal(int32(11), resp.LevelUp.NewLevel)
}

func (s *HandlerTestSuite) TestStartEncounter() {
	expires := time.Unix(1_700_000_900, 0)
	s.mockBattle.EXPECT().
		StartEncounter(s.ctx, &battle.StartEncounterInput{Owner: owner, Level: 4}).
		Return(&battle.StartEncounterOutput{Encounter: &encounter.Encounter{
			Owner:     owner,
			Wild:      &entities.Creature{ID: "wild_1", SpeciesID: "leaflet", Level: 4},
			ExpiresAt: expires,
		}}, nil)

	resp, err := s.handler.StartEncounter(s.ctx, &v1alpha1.StartEncounterRequest{Owner: owner, Level: 4})
	s.Require().NoError(err)
	s.Equal("leaflet", resp.Encounter.Wild.SpeciesID)
	s.Equal(expires.Unix(), resp.Encounter.ExpiresAt)
}

func (s *HandlerTestSuite) TestAttemptCaptureEscaped() {
	s.mockCapture.EXPECT().
		AttemptCapture(s.ctx, &capture.AttemptCaptureInput{Owner: owner}).
		Return(&capture.AttemptCaptureOutput{Rate: 0.3}, nil)

	resp, err := s.handler.AttemptCapture(s.ctx, &v1alpha1.AttemptCaptureRequest{Owner: owner})
	s.Require().NoError(err)
	s.False(resp.Caught)
	s.Nil(resp.Creature)
	s.Equal(0.3, resp.Rate)
}

func (s *HandlerTestSuite) TestHatchEggNotReady() {
	s.mockBreeding.EXPECT().
		Hatch(s.ctx, &breeding.HatchInput{Owner: owner, EggID: "egg_1"}).
		Return(nil, errors.NotReadyf("egg egg_1 has 10 of 1000 steps"))

	_, err := s.handler.HatchEgg(s.ctx, &v1alpha1.HatchEggRequest{Owner: owner, EggID: "egg_1"})
	s.requireCode(err, codes.FailedPrecondition)
	s.True(errors.HasReason(errors.FromGRPCError(err), errors.ReasonNotReady))
}

func (s *HandlerTestSuite) TestListEggs() {
	s.mockBreeding.EXPECT().
		ListEggs(s.ctx, &breeding.ListEggsInput{Owner: owner, IncubatingOnly: true}).
		Return(&breeding.ListEggsOutput{Eggs: []*breeding.EggView{{
			Egg:      &entities.Egg{ID: "egg_1", IncubationSteps: 500, RequiredSteps: 1000, State: entities.EggStateIncubating},
			Progress: 50,
		}}}, nil)

	resp, err := s.handler.ListEggs(s.ctx, &v1alpha1.ListEggsRequest{Owner: owner, IncubatingOnly: true})
	s.Require().NoError(err)
	s.Require().Len(resp.Eggs, 1)
	s.Equal(50.0, resp.Eggs[0].Progress)
	s.Equal("incubating", resp.Eggs[0].State)
}

func (s *HandlerTestSuite) TestPurchaseListingInsufficientBalance() {
	balance := int64(10)
	s.mockMarket.EXPECT().
		Purchase(s.ctx, &market.PurchaseInput{Buyer: buyer, ListingID: "lst_1", BuyerBalance: &balance}).
		Return(nil, errors.InsufficientBalancef("balance 10 is below price 500"))

	_, err := s.handler.PurchaseListing(s.ctx, &v1alpha1.PurchaseListingRequest{
		BuyerAddress: buyer,
		ListingID:    "lst_1",
		BuyerBalance: &balance,
	})
	s.requireCode(err, codes.FailedPrecondition)
	s.True(errors.HasReason(errors.FromGRPCError(err), errors.ReasonInsufficientBalance))
}

func (s *HandlerTestSuite) TestSearchListingsPassesFilter() {
	s.mockMarket.EXPECT().
		SearchListings(s.ctx, &market.SearchListingsInput{
			Filter: marketplace.ListingFilter{
				Kind:     entities.NFTKindCreature,
				MaxPrice: marketplace.PriceBound(1000),
				Rarity:   entities.RarityRare,
			},
		}).
		Return(&market.SearchListingsOutput{Listings: []*entities.Listing{{
			ID:      "lst_1",
			NFTKind: entities.NFTKindCreature,
			Price:   900,
			Status:  entities.ListingStatusActive,
		}}}, nil)

	resp, err := s.handler.SearchListings(s.ctx, &v1alpha1.SearchListingsRequest{
		NFTType:  "creature",
		MaxPrice: marketplace.PriceBound(1000),
		Rarity:   "rare",
	})
	s.Require().NoError(err)
	s.Require().Len(resp.Listings, 1)
	s.Equal("creature", resp.Listings[0].NFTType)
	s.Equal("active", resp.Listings[0].Status)
}

func (s *HandlerTestSuite) TestGetSalesHistory() {
	s.mockMarket.EXPECT().
		SalesHistory(s.ctx, &market.SalesHistoryInput{Wallet: buyer, Limit: 5}).
		Return(&market.SalesHistoryOutput{Sales: []*sales.Sale{{
			ListingID: "lst_1",
			Buyer:     buyer,
			Price:     500,
			Fee:       12,
		}}}, nil)

	resp, err := s.handler.GetSalesHistory(s.ctx, &v1alpha1.GetSalesHistoryRequest{Wallet: buyer, Limit: 5})
	s.Require().NoError(err)
	s.Require().Len(resp.Sales, 1)
	s.Equal(int64(12), resp.Sales[0].Fee)
}

func (s *HandlerTestSuite) TestListSpeciesAndMoves() {
	species, err := s.handler.ListSpecies(s.ctx, &v1alpha1.ListSpeciesRequest{})
	s.Require().NoError(err)
	s.NotEmpty(species.Species)
	s.Equal("flamepup", species.Species[0].ID)

	moves, err := s.handler.ListMoves(s.ctx, &v1alpha1.ListMovesRequest{})
	s.Require().NoError(err)
	s.NotEmpty(moves.Moves)
}
