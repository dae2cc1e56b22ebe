// Package catalog holds the static species and move data creatures are minted
// from. It is loaded once at startup and read-only afterwards.
package catalog

import (
	_ "embed"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

//go:embed data/species.yaml
var defaultSpeciesYAML []byte

//go:embed data/moves.yaml
var defaultMovesYAML []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Catalog indexes species by id and moves by name
type Catalog struct {
	species map[string]*entities.Species
	moves   map[string]*entities.Move
	order   []string
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultSpeciesYAML, defaultMovesYAML)
	})
	return defaultCatalog, defaultErr
}

// Load reads species and moves from YAML streams
func Load(speciesR, movesR io.Reader) (*Catalog, error) {
	speciesData, err := io.ReadAll(speciesR)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read species")
	}
	movesData, err := io.ReadAll(movesR)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read moves")
	}
	return Parse(speciesData, movesData)
}

// Parse builds a catalog and checks that every species move exists
func Parse(speciesData, movesData []byte) (*Catalog, error) {
	var species []*entities.Species
	if err := yaml.Unmarshal(speciesData, &species); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse species")
	}
	var moves []*entities.Move
	if err := yaml.Unmarshal(movesData, &moves); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse moves")
	}

	c := &Catalog{
		species: make(map[string]*entities.Species, len(species)),
		moves:   make(map[string]*entities.Move, len(moves)),
	}

	for _, m := range moves {
		if m.Name == "" {
			return nil, errors.InvalidArgument("move without a name")
		}
		if m.Power < 0 || m.Accuracy < 0 || m.Accuracy > 1 {
			return nil, errors.InvalidArgumentf("move %s has power %d accuracy %v", m.Name, m.Power, m.Accuracy)
		}
		if _, dup := c.moves[m.Name]; dup {
			return nil, errors.InvalidArgumentf("duplicate move %s", m.Name)
		}
		c.moves[m.Name] = m
	}

	for _, sp := range species {
		if err := c.validateSpecies(sp); err != nil {
			return nil, err
		}
		c.species[sp.ID] = sp
		c.order = append(c.order, sp.ID)
	}

	return c, nil
}

func (c *Catalog) validateSpecies(sp *entities.Species) error {
	if sp.ID == "" {
		return errors.InvalidArgument("species without an id")
	}
	if _, dup := c.species[sp.ID]; dup {
		return errors.InvalidArgumentf("duplicate species %s", sp.ID)
	}
	if len(sp.Types) < 1 || len(sp.Types) > 2 {
		return errors.InvalidArgumentf("species %s must have one or two types", sp.ID)
	}
	if !sp.BaseStats.Positive() {
		return errors.InvalidArgumentf("species %s has non-positive base stats", sp.ID)
	}
	if !sp.Rarity.Valid() {
		return errors.InvalidArgumentf("species %s has unknown rarity %q", sp.ID, sp.Rarity)
	}
	for _, name := range sp.Moves {
		if _, ok := c.moves[name]; !ok {
			return errors.InvalidArgumentf("species %s references unknown move %s", sp.ID, name)
		}
	}
	return nil
}

// Species returns a species by id
func (c *Catalog) Species(id string) (*entities.Species, error) {
	sp, ok := c.species[id]
	if !ok {
		return nil, errors.NotFoundf("species %s not found", id)
	}
	return sp, nil
}

// Move returns a copy of a move by name
func (c *Catalog) Move(name string) (*entities.Move, error) {
	m, ok := c.moves[name]
	if !ok {
		return nil, errors.NotFoundf("move %s not found", name)
	}
	out := *m
	return &out, nil
}

// ListSpecies returns species in file order
func (c *Catalog) ListSpecies() []*entities.Species {
	out := make([]*entities.Species, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.species[id])
	}
	return out
}

// ListMoves returns moves sorted by name
func (c *Catalog) ListMoves() []*entities.Move {
	out := make([]*entities.Move, 0, len(c.moves))
	for _, m := range c.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Knows reports whether a species can use a move
func (c *Catalog) Knows(speciesID, move string) bool {
	sp, ok := c.species[speciesID]
	if !ok {
		return false
	}
	for _, m := range sp.Moves {
		if m == move {
			return true
		}
	}
	return false
}
