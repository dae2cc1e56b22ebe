package entities

import "strings"

// ElementType is an elemental type tag carried by creatures and moves
type ElementType string

// Element types known to the default type chart
const (
	TypeNormal   ElementType = "normal"
	TypeFire     ElementType = "fire"
	TypeWater    ElementType = "water"
	TypeGrass    ElementType = "grass"
	TypeElectric ElementType = "electric"
	TypeIce      ElementType = "ice"
	TypeFighting ElementType = "fighting"
	TypePoison   ElementType = "poison"
	TypeGround   ElementType = "ground"
	TypeFlying   ElementType = "flying"
	TypePsychic  ElementType = "psychic"
	TypeBug      ElementType = "bug"
	TypeRock     ElementType = "rock"
	TypeGhost    ElementType = "ghost"
	TypeDragon   ElementType = "dragon"
	TypeDark     ElementType = "dark"
	TypeSteel    ElementType = "steel"
	TypeFairy    ElementType = "fairy"
)

// ParseElementType normalizes a type tag; empty input stays empty
func ParseElementType(s string) ElementType {
	return ElementType(strings.ToLower(strings.TrimSpace(s)))
}

// Rarity is the rarity tier of a species
type Rarity string

// Rarity tiers from most to least common
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every tier in order of increasing rarity
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// Valid reports whether r is a known tier
func (r Rarity) Valid() bool {
	for _, known := range Rarities {
		if r == known {
			return true
		}
	}
	return false
}

// NFTKind tags what a marketplace listing sells
type NFTKind string

// NFT kinds
const (
	NFTKindCreature NFTKind = "creature"
	NFTKindEgg      NFTKind = "egg"
)

// Valid reports whether k is a known kind
func (k NFTKind) Valid() bool {
	return k == NFTKindCreature || k == NFTKindEgg
}
