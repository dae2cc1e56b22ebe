// Package rng turns an rpg-toolkit dice roller into the uniform draws the game
// rules consume. Every helper consumes exactly one roll.
package rng

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

// Resolution is the die size used for a uniform draw
const Resolution = 1_000_000

// Default returns the toolkit's crypto-backed roller
func Default() dice.Roller {
	return dice.DefaultRoller
}

// Uniform draws one value in [0, 1)
func Uniform(r dice.Roller) (float64, error) {
	if r == nil {
		return 0, errors.Internal("dice roller is nil")
	}
	v, err := r.Roll(Resolution)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll uniform value")
	}
	if v < 1 || v > Resolution {
		return 0, errors.Internalf("roller returned %d outside 1..%d", v, Resolution)
	}
	return float64(v-1) / Resolution, nil
}

// Chance draws once and reports whether the draw fell strictly below p
func Chance(r dice.Roller, p float64) (bool, error) {
	u, err := Uniform(r)
	if err != nil {
		return false, err
	}
	return u < p, nil
}

// Intn draws one value in [0, n)
func Intn(r dice.Roller, n int) (int, error) {
	if r == nil {
		return 0, errors.Internal("dice roller is nil")
	}
	if n <= 0 {
		return 0, errors.InvalidArgumentf("n must be positive, got %d", n)
	}
	v, err := r.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll")
	}
	return v - 1, nil
}

// RollFor converts a desired uniform value back into the die face that
// produces it. Used by tests to script rolls.
func RollFor(u float64) int {
	return int(u*Resolution) + 1
}
