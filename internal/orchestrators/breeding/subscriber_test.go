package breeding_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokechain-api/internal/engine/incubation"
	"github.com/KirkDiggler/pokechain-api/internal/gameevents"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/breeding"
	breedingmock "github.com/KirkDiggler/pokechain-api/internal/orchestrators/breeding/mock"
)

func TestSubscribeRoutesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := breedingmock.NewMockService(ctrl)
	bus := events.NewBus()
	ctx := context.Background()

	ids := breeding.Subscribe(bus, svc)
	assert.Len(t, ids, 2)

	svc.EXPECT().
		RecordEvent(gomock.Any(), &breeding.RecordEventInput{Owner: owner, Source: incubation.SourceBattleWin}).
		Return(&breeding.RecordEventOutput{}, nil)
	svc.EXPECT().
		RecordEvent(gomock.Any(), &breeding.RecordEventInput{Owner: owner, Source: incubation.SourceCapture}).
		Return(&breeding.RecordEventOutput{}, nil)

	require.NoError(t, bus.Publish(ctx, gameevents.NewBattleWon(owner, "crt_1")))
	require.NoError(t, bus.Publish(ctx, gameevents.NewCreatureCaptured(owner, "crt_2")))
}

func TestSubscribeIgnoresEventsWithoutOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := breedingmock.NewMockService(ctrl)
	bus := events.NewBus()

	breeding.Subscribe(bus, svc)

	e := events.NewGameEvent(gameevents.BattleWon, gameevents.Creature("crt_1"), nil)
	require.NoError(t, bus.Publish(context.Background(), e))
}
