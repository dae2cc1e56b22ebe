package battle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokechain-api/internal/engine/battle"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/rng"
	"github.com/KirkDiggler/pokechain-api/internal/testutils"
)

var (
	noCrit  = rng.RollFor(0.5)
	crit    = rng.RollFor(0.01)
	landHit = rng.RollFor(0.1)
	miss    = rng.RollFor(0.99)
)

type DamageTestSuite struct {
	suite.Suite
	attacker *entities.Creature
	defender *entities.Creature
	ember    *entities.Move
}

func TestDamageSuite(t *testing.T) {
	suite.Run(t, new(DamageTestSuite))
}

func (s *DamageTestSuite) SetupTest() {
	s.attacker = &entities.Creature{
		ID:        "crt_charmander",
		SpeciesID: "charmander",
		Level:     10,
		Types:     []entities.ElementType{entities.TypeFire},
		Stats:     entities.Stats{HP: 39, Attack: 55, Defense: 43, Speed: 65},
		CurrentHP: 39,
	}
	s.defender = &entities.Creature{
		ID:        "crt_bulbasaur",
		SpeciesID: "bulbasaur",
		Level:     10,
		Types:     []entities.ElementType{entities.TypeGrass},
		Stats:     entities.Stats{HP: 45, Attack: 49, Defense: 40, Speed: 45},
		CurrentHP: 45,
	}
	s.ember = &entities.Move{Name: "Ember", Type: entities.TypeFire, Power: 40, Accuracy: 1}
}

func (s *DamageTestSuite) calculator(faces ...int) (*battle.Calculator, *testutils.ScriptedRoller) {
	roller := testutils.NewScriptedRoller(faces...)
	calc, err := battle.NewCalculator(&battle.CalculatorConfig{
		TypeChart: battle.DefaultTypeChart(),
		Roller:    roller,
	})
	s.Require().NoError(err)
	return calc, roller
}

func (s *DamageTestSuite) TestNewCalculatorRequiresDependencies() {
	_, err := battle.NewCalculator(&battle.CalculatorConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "TypeChart")
	s.Contains(err.Error(), "Roller")

	_, err = battle.NewCalculator(nil)
	s.Require().Error(err)
}

func (s *DamageTestSuite) TestSuperEffectiveScenario() {
	calc, roller := s.calculator(noCrit)

	result, err := calc.ComputeDamage(s.attacker, s.defender, s.ember)
	s.Require().NoError(err)

	// (2*10+10)*40*55 / (250*40) = 6, +2
	s.Equal(int32(8), result.BaseDamage)
	s.Equal(2.0, result.Effectiveness)
	s.False(result.Critical)
	s.False(result.Missed)
	s.Equal(int32(16), result.Damage)
	s.Equal(0, roller.Remaining())
}

func (s *DamageTestSuite) TestCriticalDoublesDamage() {
	calc, _ := s.calculator(crit)

	result, err := calc.ComputeDamage(s.attacker, s.defender, s.ember)
	s.Require().NoError(err)
	s.True(result.Critical)
	s.Equal(int32(32), result.Damage)
}

func (s *DamageTestSuite) TestCriticalThreshold() {
	calc, _ := s.calculator(rng.RollFor(battle.CriticalChance), rng.RollFor(battle.CriticalChance-0.000001))

	first, err := calc.ComputeDamage(s.attacker, s.defender, s.ember)
	s.Require().NoError(err)
	s.False(first.Critical)

	second, err := calc.ComputeDamage(s.attacker, s.defender, s.ember)
	s.Require().NoError(err)
	s.True(second.Critical)
}

func (s *DamageTestSuite) TestMissIsExplicit() {
	move := &entities.Move{Name: "Fire Blast", Type: entities.TypeFire, Power: 110, Accuracy: 0.85}
	calc, roller := s.calculator(miss)

	result, err := calc.ComputeDamage(s.attacker, s.defender, move)
	s.Require().NoError(err)
	s.True(result.Missed)
	s.Zero(result.Damage)
	s.Equal(0, roller.Remaining(), "a miss must not roll for critical")
}

func (s *DamageTestSuite) TestAccuracyCheckPrecedesCritical() {
	move := &entities.Move{Name: "Fire Blast", Type: entities.TypeFire, Power: 110, Accuracy: 0.85}
	calc, roller := s.calculator(landHit, noCrit)

	result, err := calc.ComputeDamage(s.attacker, s.defender, move)
	s.Require().NoError(err)
	s.False(result.Missed)
	s.Positive(result.Damage)
	s.Equal([]int{rng.Resolution, rng.Resolution}, roller.Calls())
}

func (s *DamageTestSuite) TestStatusMoveDealsNoDamageWithoutRolling() {
	growl := &entities.Move{Name: "Growl", Type: entities.TypeNormal, Power: 0, Accuracy: 1}
	calc, roller := s.calculator()

	result, err := calc.ComputeDamage(s.attacker, s.defender, growl)
	s.Require().NoError(err)
	s.Zero(result.Damage)
	s.False(result.Critical)
	s.Empty(roller.Calls())
}

func (s *DamageTestSuite) TestNoEffectShortCircuits() {
	ghost := s.defender.Clone()
	ghost.Types = []entities.ElementType{entities.TypeGhost}
	tackle := &entities.Move{Name: "Tackle", Type: entities.TypeNormal, Power: 40, Accuracy: 1}
	calc, roller := s.calculator()

	result, err := calc.ComputeDamage(s.attacker, ghost, tackle)
	s.Require().NoError(err)
	s.Equal(0.0, result.Effectiveness)
	s.Zero(result.Damage)
	s.Empty(roller.Calls())
}

func (s *DamageTestSuite) TestDualTypeEffectivenessMultiplies() {
	dual := s.defender.Clone()
	dual.Types = []entities.ElementType{entities.TypeGrass, entities.TypeBug}
	calc, _ := s.calculator(noCrit)

	result, err := calc.ComputeDamage(s.attacker, dual, s.ember)
	s.Require().NoError(err)
	s.Equal(4.0, result.Effectiveness)
	s.Equal(result.BaseDamage*4, result.Damage)
}

func (s *DamageTestSuite) TestInvalidInput() {
	testCases := []struct {
		name   string
		mutate func(a, d *entities.Creature, m *entities.Move)
	}{
		{"zero level", func(a, _ *entities.Creature, _ *entities.Move) { a.Level = 0 }},
		{"negative attack", func(a, _ *entities.Creature, _ *entities.Move) { a.Stats.Attack = -1 }},
		{"zero defense", func(_, d *entities.Creature, _ *entities.Move) { d.Stats.Defense = 0 }},
		{"negative power", func(_, _ *entities.Creature, m *entities.Move) { m.Power = -5 }},
		{"accuracy above one", func(_, _ *entities.Creature, m *entities.Move) { m.Accuracy = 1.2 }},
		{"accuracy NaN", func(_, _ *entities.Creature, m *entities.Move) { m.Accuracy = math.NaN() }},
		{"no defender types", func(_, d *entities.Creature, _ *entities.Move) { d.Types = nil }},
		{"three defender types", func(_, d *entities.Creature, _ *entities.Move) {
			d.Types = []entities.ElementType{entities.TypeFire, entities.TypeWater, entities.TypeIce}
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			a, d := s.attacker.Clone(), s.defender.Clone()
			m := *s.ember
			tc.mutate(a, d, &m)

			calc, _ := s.calculator()
			_, err := calc.ComputeDamage(a, d, &m)
			s.Require().Error(err)
			s.True(errors.HasReason(err, errors.ReasonInvalidInput))
		})
	}
}

func (s *DamageTestSuite) TestBaseDamageMatchesFormula() {
	for level := int32(1); level <= 100; level += 9 {
		for power := int32(0); power <= 150; power += 15 {
			for _, atk := range []int32{5, 49, 55, 130} {
				for _, def := range []int32{5, 40, 65, 180} {
					expected := math.Floor((float64(2*level)/5+2)*float64(power)*float64(atk)/float64(def)/50 + 2 + 1e-9)
					s.Equal(int32(expected), battle.BaseDamage(level, power, atk, def),
						"L=%d P=%d A=%d D=%d", level, power, atk, def)
				}
			}
		}
	}
}

func (s *DamageTestSuite) TestBaseDamageMonotonic() {
	for v := int32(1); v < 200; v++ {
		s.LessOrEqual(battle.BaseDamage(20, 60, v, 50), battle.BaseDamage(20, 60, v+1, 50), "attack %d", v)
		s.LessOrEqual(battle.BaseDamage(20, v, 60, 50), battle.BaseDamage(20, v+1, 60, 50), "power %d", v)
		s.GreaterOrEqual(battle.BaseDamage(20, 60, 60, v), battle.BaseDamage(20, 60, 60, v+1), "defense %d", v)
	}
}
