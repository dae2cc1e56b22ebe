package breeding

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokechain-api/internal/engine/incubation"
	"github.com/KirkDiggler/pokechain-api/internal/gameevents"
)

// EventPriority orders the incubation handlers among other bus subscribers
const EventPriority = 100

// Subscribe advances incubation whenever a battle is won or a creature is
// captured. It returns the subscription IDs.
func Subscribe(bus events.EventBus, svc Service) []string {
	return []string{
		bus.SubscribeFunc(gameevents.BattleWon, EventPriority, stepHandler(svc, incubation.SourceBattleWin)),
		bus.SubscribeFunc(gameevents.CreatureCaptured, EventPriority, stepHandler(svc, incubation.SourceCapture)),
	}
}

func stepHandler(svc Service, source incubation.StepSource) events.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		owner := gameevents.Owner(e)
		if owner == "" {
			return nil
		}

		out, err := svc.RecordEvent(ctx, &RecordEventInput{Owner: owner, Source: source})
		if err != nil {
			slog.ErrorContext(ctx, "Failed to advance incubation",
				"owner", owner,
				"source", source,
				"error", err)
			return err
		}

		if len(out.Eggs) > 0 {
			slog.DebugContext(ctx, "Incubation advanced",
				"owner", owner,
				"source", source,
				"eggs", len(out.Eggs))
		}
		return nil
	}
}
