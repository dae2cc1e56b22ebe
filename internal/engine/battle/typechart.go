package battle

import (
	"bytes"
	_ "embed"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

//go:embed typechart.yaml
var defaultTypeChartYAML []byte

var (
	defaultChartOnce sync.Once
	defaultChart     *TypeChart
)

// TypeChart maps (attacking type, defending type) to a damage multiplier.
// It is immutable after construction. Unlisted pairs are neutral.
type TypeChart struct {
	multipliers map[entities.ElementType]map[entities.ElementType]float64
}

// allowedMultipliers is the closed set a chart may contain
var allowedMultipliers = map[float64]bool{0: true, 0.5: true, 1: true, 2: true}

// NewTypeChart validates and copies the given matchups
func NewTypeChart(matchups map[entities.ElementType]map[entities.ElementType]float64) (*TypeChart, error) {
	vb := errors.NewValidationBuilder()
	copied := make(map[entities.ElementType]map[entities.ElementType]float64, len(matchups))
	for atk, row := range matchups {
		if atk == "" {
			vb.Field("attacking_type", "must not be empty")
			continue
		}
		copiedRow := make(map[entities.ElementType]float64, len(row))
		for def, m := range row {
			if def == "" {
				vb.Fieldf(string(atk), "defending type must not be empty")
				continue
			}
			if !allowedMultipliers[m] {
				vb.Fieldf(string(atk)+"->"+string(def), "multiplier %v not in {0, 0.5, 1, 2}", m)
				continue
			}
			copiedRow[def] = m
		}
		copied[atk] = copiedRow
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid type chart")
	}

	return &TypeChart{multipliers: copied}, nil
}

// LoadTypeChart reads a YAML chart of the form `attacking: {defending: multiplier}`
func LoadTypeChart(r io.Reader) (*TypeChart, error) {
	var raw map[string]map[string]float64
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode type chart")
	}

	matchups := make(map[entities.ElementType]map[entities.ElementType]float64, len(raw))
	for atk, row := range raw {
		parsedRow := make(map[entities.ElementType]float64, len(row))
		for def, m := range row {
			parsedRow[entities.ParseElementType(def)] = m
		}
		matchups[entities.ParseElementType(atk)] = parsedRow
	}

	return NewTypeChart(matchups)
}

// DefaultTypeChart returns the standard 18-type chart
func DefaultTypeChart() *TypeChart {
	defaultChartOnce.Do(func() {
		chart, err := LoadTypeChart(bytes.NewReader(defaultTypeChartYAML))
		if err != nil {
			panic("embedded type chart is invalid: " + err.Error())
		}
		defaultChart = chart
	})
	return defaultChart
}

// Multiplier returns the multiplier for one matchup, 1.0 when unlisted
func (c *TypeChart) Multiplier(attacking, defending entities.ElementType) float64 {
	if c == nil {
		return 1
	}
	if m, ok := c.multipliers[attacking][defending]; ok {
		return m
	}
	return 1
}

// Effectiveness is the product of the move type's multiplier over every defender type
func (c *TypeChart) Effectiveness(moveType entities.ElementType, defenderTypes []entities.ElementType) float64 {
	eff := 1.0
	for _, def := range defenderTypes {
		eff *= c.Multiplier(moveType, def)
	}
	return eff
}

// Len returns the number of explicitly listed matchups
func (c *TypeChart) Len() int {
	n := 0
	for _, row := range c.multipliers {
		n += len(row)
	}
	return n
}
