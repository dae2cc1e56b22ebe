// Package entities holds the game records shared by the rules engine,
// repositories and handlers.
package entities

// Stats is a creature's base stat block
type Stats struct {
	HP      int32 `json:"hp" yaml:"hp"`
	Attack  int32 `json:"attack" yaml:"attack"`
	Defense int32 `json:"defense" yaml:"defense"`
	Speed   int32 `json:"speed" yaml:"speed"`
}

// Positive reports whether every stat is at least 1
func (s Stats) Positive() bool {
	return s.HP > 0 && s.Attack > 0 && s.Defense > 0 && s.Speed > 0
}

// Creature is an owned, battle-capable collectible
type Creature struct {
	ID         string        `json:"id"`
	SpeciesID  string        `json:"species_id"`
	Name       string        `json:"name"`
	Level      int32         `json:"level"`
	Experience int64         `json:"experience"`
	Stats      Stats         `json:"stats"`
	Types      []ElementType `json:"types"`
	CurrentHP  int32         `json:"current_hp"`
	Owner      string        `json:"owner,omitempty"`
	Rarity     Rarity        `json:"rarity,omitempty"`
	CreatedAt  int64         `json:"created_at,omitempty"`
	UpdatedAt  int64         `json:"updated_at,omitempty"`
}

// MaxHP is the HP stat
func (c *Creature) MaxHP() int32 {
	return c.Stats.HP
}

// Fainted reports whether the creature has no HP left
func (c *Creature) Fainted() bool {
	return c.CurrentHP <= 0
}

// HPFraction is current over max HP in [0, 1]
func (c *Creature) HPFraction() float64 {
	if c.Stats.HP <= 0 {
		return 0
	}
	f := float64(c.CurrentHP) / float64(c.Stats.HP)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// ApplyDamage subtracts damage and floors HP at zero; it returns the HP lost
func (c *Creature) ApplyDamage(damage int32) int32 {
	if damage <= 0 {
		return 0
	}
	if damage > c.CurrentHP {
		damage = c.CurrentHP
	}
	c.CurrentHP -= damage
	return damage
}

// Heal restores HP up to the maximum
func (c *Creature) Heal() {
	c.CurrentHP = c.Stats.HP
}

// Clone returns a deep copy
func (c *Creature) Clone() *Creature {
	if c == nil {
		return nil
	}
	out := *c
	out.Types = append([]ElementType(nil), c.Types...)
	return &out
}

// Move is a battle action. It is transient and never persisted.
type Move struct {
	Name     string      `json:"name" yaml:"name"`
	Type     ElementType `json:"type" yaml:"type"`
	Power    int32       `json:"power" yaml:"power"`
	Accuracy float64     `json:"accuracy" yaml:"accuracy"`
}
