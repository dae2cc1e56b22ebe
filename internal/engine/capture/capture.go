// Package capture decides whether a wild creature is caught.
//
// The rate is baseRate(rarity) * (1.5 - hpFraction), clamped to [0, 1]: a
// creature at full health is half as likely to be caught as its tier's base
// rate, one at zero health half again more likely.
package capture

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/rng"
)

var baseRates = map[entities.Rarity]float64{
	entities.RarityCommon:    0.60,
	entities.RarityUncommon:  0.45,
	entities.RarityRare:      0.30,
	entities.RarityEpic:      0.15,
	entities.RarityLegendary: 0.05,
}

// BaseRate returns the tier's rate at half health
func BaseRate(rarity entities.Rarity) (float64, error) {
	rate, ok := baseRates[rarity]
	if !ok {
		return 0, errors.InvalidInputf("unknown rarity %q", rarity)
	}
	return rate, nil
}

// CalculateCaptureRate returns the capture probability in [0, 1]
func CalculateCaptureRate(rarity entities.Rarity, remainingHealthFraction float64) (float64, error) {
	base, err := BaseRate(rarity)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(remainingHealthFraction) || remainingHealthFraction < 0 || remainingHealthFraction > 1 {
		return 0, errors.InvalidInputf("remaining health fraction must be within [0, 1], got %v", remainingHealthFraction)
	}

	return clamp(base * (1.5 - remainingHealthFraction)), nil
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Engine performs capture rolls
type Engine struct {
	roller dice.Roller
}

// NewEngine creates a capture engine drawing from roller
func NewEngine(roller dice.Roller) (*Engine, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}
	return &Engine{roller: roller}, nil
}

// AttemptCapture draws one uniform value and succeeds iff it is below rate.
// A failed attempt is final; nothing is re-rolled.
func (e *Engine) AttemptCapture(rate float64) (bool, error) {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return false, errors.InvalidInputf("capture rate must be within [0, 1], got %v", rate)
	}
	caught, err := rng.Chance(e.roller, rate)
	if err != nil {
		return false, errors.Wrap(err, "failed capture roll")
	}
	return caught, nil
}
