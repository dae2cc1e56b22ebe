package gameevents_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokechain-api/internal/gameevents"
)

const owner = "0x00000000000000000000000000000000000000aa"

func TestEventsCarryOwner(t *testing.T) {
	won := gameevents.NewBattleWon(owner, "crt_1")
	assert.Equal(t, gameevents.BattleWon, won.Type())
	assert.Equal(t, owner, gameevents.Owner(won))
	assert.Equal(t, "crt_1", won.Target().GetID())

	caught := gameevents.NewCreatureCaptured(owner, "crt_2")
	assert.Equal(t, gameevents.CreatureCaptured, caught.Type())
	assert.Equal(t, owner, gameevents.Owner(caught))
}

func TestOwnerIgnoresNonWalletSource(t *testing.T) {
	e := events.NewGameEvent(gameevents.BattleWon, gameevents.Creature("crt_1"), nil)
	assert.Empty(t, gameevents.Owner(e))
	assert.Empty(t, gameevents.Owner(nil))
}

func TestBusDelivery(t *testing.T) {
	bus := events.NewBus()

	var got []string
	bus.SubscribeFunc(gameevents.BattleWon, 0, func(_ context.Context, e events.Event) error {
		got = append(got, gameevents.Owner(e))
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), gameevents.NewBattleWon(owner, "crt_1")))
	require.NoError(t, bus.Publish(context.Background(), gameevents.NewCreatureCaptured(owner, "crt_2")))

	assert.Equal(t, []string{owner}, got)
}
