package entities

// Species is static catalog data a creature is minted or hatched from
type Species struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Types     []ElementType `json:"types" yaml:"types"`
	BaseStats Stats         `json:"base_stats" yaml:"base_stats"`
	Rarity    Rarity        `json:"rarity" yaml:"rarity"`
	Moves     []string      `json:"moves,omitempty" yaml:"moves"`
}
