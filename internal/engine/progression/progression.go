// Package progression computes experience awards, level-up thresholds and
// stat growth. Experience is cumulative: a creature at level L levels up once
// its total experience reaches L³, and the check repeats against the new level
// so a single large award can grant several levels.
package progression

import (
	"math"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

const (
	// BaseXP is the experience yield numerator per defeated level
	BaseXP = 50

	// YieldDivisor divides BaseXP * loser level
	YieldDivisor = 7

	// DefaultGrowthRate multiplies every stat on level-up
	DefaultGrowthRate = 1.1

	// MaxLevel is the level cap; no level-ups happen beyond it
	MaxLevel = 100
)

// AwardExperience returns floor(BaseXP * loserLevel / 7). The winner's level
// is validated but does not scale the award.
func AwardExperience(winnerLevel, loserLevel int32) (int64, error) {
	if winnerLevel < 1 {
		return 0, errors.InvalidInputf("winner level must be at least 1, got %d", winnerLevel)
	}
	if loserLevel < 1 {
		return 0, errors.InvalidInputf("loser level must be at least 1, got %d", loserLevel)
	}
	return int64(BaseXP) * int64(loserLevel) / YieldDivisor, nil
}

// Threshold is the cumulative experience needed to leave level
func Threshold(level int32) int64 {
	l := int64(level)
	return l * l * l
}

// StartingExperience is the experience a creature created at level carries,
// the threshold of the level below it
func StartingExperience(level int32) int64 {
	if level <= 1 {
		return 0
	}
	return Threshold(level - 1)
}

// CheckLevelUp reports whether experience reaches the current level's threshold
func CheckLevelUp(level int32, experience int64) (bool, error) {
	if level < 1 {
		return false, errors.InvalidInputf("level must be at least 1, got %d", level)
	}
	if experience < 0 {
		return false, errors.InvalidInputf("experience must not be negative, got %d", experience)
	}
	if level >= MaxLevel {
		return false, nil
	}
	return experience >= Threshold(level), nil
}

// ApplyLevelUp multiplies every stat by growthRate and floors the result
func ApplyLevelUp(stats entities.Stats, growthRate float64) (entities.Stats, error) {
	if math.IsNaN(growthRate) || math.IsInf(growthRate, 0) || growthRate < 1 {
		return entities.Stats{}, errors.InvalidInputf("growth rate must be a finite value >= 1, got %v", growthRate)
	}
	if !stats.Positive() {
		return entities.Stats{}, errors.InvalidInputf("stats must be positive, got %+v", stats)
	}

	grow := func(v int32) int32 {
		return int32(math.Floor(float64(v) * growthRate))
	}

	return entities.Stats{
		HP:      grow(stats.HP),
		Attack:  grow(stats.Attack),
		Defense: grow(stats.Defense),
		Speed:   grow(stats.Speed),
	}, nil
}

// LevelUpResult summarizes experience applied to one creature
type LevelUpResult struct {
	ExperienceGained int64
	OldLevel         int32
	NewLevel         int32
	OldStats         entities.Stats
	NewStats         entities.Stats
}

// LevelsGained is the number of levels the award produced
func (r *LevelUpResult) LevelsGained() int32 {
	return r.NewLevel - r.OldLevel
}

// Engine applies experience using a fixed growth rate
type Engine struct {
	growthRate float64
}

// NewEngine creates an engine; a zero growth rate selects DefaultGrowthRate
func NewEngine(growthRate float64) (*Engine, error) {
	if growthRate == 0 {
		growthRate = DefaultGrowthRate
	}
	if math.IsNaN(growthRate) || math.IsInf(growthRate, 0) || growthRate < 1 {
		return nil, errors.InvalidArgumentf("growth rate must be a finite value >= 1, got %v", growthRate)
	}
	return &Engine{growthRate: growthRate}, nil
}

// GrowthRate returns the configured growth rate
func (e *Engine) GrowthRate() float64 {
	return e.growthRate
}

// GrantExperience adds xp to creature and applies every level-up it earns.
// Current HP rises by the same amount as max HP on each level.
func (e *Engine) GrantExperience(creature *entities.Creature, xp int64) (*LevelUpResult, error) {
	if creature == nil {
		return nil, errors.InvalidInputf("creature is required")
	}
	if xp < 0 {
		return nil, errors.InvalidInputf("experience award must not be negative, got %d", xp)
	}
	if creature.Level < 1 || creature.Experience < 0 {
		return nil, errors.InvalidInputf("creature %s has level %d and experience %d",
			creature.ID, creature.Level, creature.Experience)
	}

	result := &LevelUpResult{
		ExperienceGained: xp,
		OldLevel:         creature.Level,
		OldStats:         creature.Stats,
	}

	creature.Experience += xp
	for {
		ready, err := CheckLevelUp(creature.Level, creature.Experience)
		if err != nil {
			return nil, err
		}
		if !ready {
			break
		}

		grown, err := ApplyLevelUp(creature.Stats, e.growthRate)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to level up creature %s", creature.ID)
		}
		creature.CurrentHP += grown.HP - creature.Stats.HP
		creature.Stats = grown
		creature.Level++
	}

	result.NewLevel = creature.Level
	result.NewStats = creature.Stats
	return result, nil
}

// StatsAtLevel grows base stats once per level above 1, the same way a
// creature raised from level 1 would have grown
func (e *Engine) StatsAtLevel(base entities.Stats, level int32) (entities.Stats, error) {
	if level < 1 || level > MaxLevel {
		return entities.Stats{}, errors.InvalidInputf("level must be within 1..%d, got %d", MaxLevel, level)
	}
	stats := base
	for l := int32(1); l < level; l++ {
		grown, err := ApplyLevelUp(stats, e.growthRate)
		if err != nil {
			return entities.Stats{}, err
		}
		stats = grown
	}
	return stats, nil
}

// Mint builds an unowned creature of species at level, with stats grown from
// the species base and the experience a creature of that level starts with
func (e *Engine) Mint(species *entities.Species, level int32, id string) (*entities.Creature, error) {
	if species == nil {
		return nil, errors.InvalidInputf("species is required")
	}
	stats, err := e.StatsAtLevel(species.BaseStats, level)
	if err != nil {
		return nil, err
	}
	return &entities.Creature{
		ID:         id,
		SpeciesID:  species.ID,
		Name:       species.Name,
		Level:      level,
		Experience: StartingExperience(level),
		Stats:      stats,
		Types:      append([]entities.ElementType(nil), species.Types...),
		CurrentHP:  stats.HP,
		Rarity:     species.Rarity,
	}, nil
}
