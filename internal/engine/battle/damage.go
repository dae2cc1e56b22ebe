// Package battle computes move damage, type effectiveness and turn order.
//
// Random draws happen in a fixed order for a single move use: first the
// accuracy check (only when accuracy is below 1), then the critical-hit roll
// (skipped when the move has no power or no effect). Nothing else draws.
package battle

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/rng"
)

const (
	// CriticalChance is the probability of a critical hit (1 in 16)
	CriticalChance = 0.0625

	// CriticalMultiplier scales damage on a critical hit
	CriticalMultiplier = 2.0

	// MaxTypes is the most element types a creature can carry
	MaxTypes = 2
)

// DamageResult describes one move use
type DamageResult struct {
	// Missed is set when the accuracy check failed; the other fields are zero
	Missed        bool
	Damage        int32
	BaseDamage    int32
	Effectiveness float64
	Critical      bool
}

// CalculatorConfig holds the calculator dependencies
type CalculatorConfig struct {
	TypeChart *TypeChart
	Roller    dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *CalculatorConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.TypeChart == nil {
		vb.RequiredField("TypeChart")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

// Calculator computes damage against an injected type chart
type Calculator struct {
	chart  *TypeChart
	roller dice.Roller
}

// NewCalculator creates a damage calculator
func NewCalculator(cfg *CalculatorConfig) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Calculator{
		chart:  cfg.TypeChart,
		roller: cfg.Roller,
	}, nil
}

// TypeChart returns the chart the calculator was built with
func (c *Calculator) TypeChart() *TypeChart {
	return c.chart
}

// BaseDamage is floor(((2L/5 + 2) * P * A / D / 50) + 2), evaluated exactly
// in integers as (2L+10)*P*A / (250*D) + 2.
func BaseDamage(level, power, attack, defense int32) int32 {
	num := int64(2*level+10) * int64(power) * int64(attack)
	den := int64(250) * int64(defense)
	return int32(num/den) + 2
}

// ComputeDamage resolves one use of move by attacker against defender.
// It does not touch the defender's HP.
func (c *Calculator) ComputeDamage(attacker, defender *entities.Creature, move *entities.Move) (*DamageResult, error) {
	if err := validateDamageInput(attacker, defender, move); err != nil {
		return nil, err
	}

	if move.Accuracy < 1 {
		hit, err := rng.Chance(c.roller, move.Accuracy)
		if err != nil {
			return nil, errors.Wrap(err, "failed accuracy check")
		}
		if !hit {
			return &DamageResult{Missed: true}, nil
		}
	}

	eff := c.chart.Effectiveness(move.Type, defender.Types)

	if move.Power == 0 || eff == 0 {
		return &DamageResult{Effectiveness: eff}, nil
	}

	base := BaseDamage(attacker.Level, move.Power, attacker.Stats.Attack, defender.Stats.Defense)

	critical, err := rng.Chance(c.roller, CriticalChance)
	if err != nil {
		return nil, errors.Wrap(err, "failed critical roll")
	}

	multiplier := eff
	if critical {
		multiplier *= CriticalMultiplier
	}

	damage := int32(math.Floor(float64(base) * multiplier))
	if damage < 0 {
		damage = 0
	}

	return &DamageResult{
		Damage:        damage,
		BaseDamage:    base,
		Effectiveness: eff,
		Critical:      critical,
	}, nil
}

func validateDamageInput(attacker, defender *entities.Creature, move *entities.Move) error {
	if attacker == nil || defender == nil || move == nil {
		return errors.InvalidInputf("attacker, defender and move are required")
	}
	if attacker.Level < 1 {
		return errors.InvalidInputf("attacker level must be at least 1, got %d", attacker.Level)
	}
	if attacker.Stats.Attack <= 0 {
		return errors.InvalidInputf("attacker attack must be positive, got %d", attacker.Stats.Attack)
	}
	if defender.Stats.Defense <= 0 {
		return errors.InvalidInputf("defender defense must be positive, got %d", defender.Stats.Defense)
	}
	if n := len(defender.Types); n < 1 || n > MaxTypes {
		return errors.InvalidInputf("defender must have 1 or 2 types, got %d", n)
	}
	if move.Power < 0 {
		return errors.InvalidInputf("move power must not be negative, got %d", move.Power)
	}
	if math.IsNaN(move.Accuracy) || move.Accuracy < 0 || move.Accuracy > 1 {
		return errors.InvalidInputf("move accuracy must be within [0, 1], got %v", move.Accuracy)
	}
	return nil
}
