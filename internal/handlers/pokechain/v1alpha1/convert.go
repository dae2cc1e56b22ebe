package v1alpha1

import (
	"github.com/KirkDiggler/pokechain-api/internal/engine/progression"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/battle"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/breeding"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/encounter"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/sales"
)

func convertStats(s entities.Stats) Stats {
	return Stats{HP: s.HP, Attack: s.Attack, Defense: s.Defense, Speed: s.Speed}
}

func convertTypes(types []entities.ElementType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func convertCreature(c *entities.Creature) *Creature {
	if c == nil {
		return nil
	}
	return &Creature{
		ID:         c.ID,
		SpeciesID:  c.SpeciesID,
		Name:       c.Name,
		Level:      c.Level,
		Experience: c.Experience,
		Stats:      convertStats(c.Stats),
		Types:      convertTypes(c.Types),
		CurrentHP:  c.CurrentHP,
		Owner:      c.Owner,
		Rarity:     string(c.Rarity),
	}
}

func convertCreatures(creatures []*entities.Creature) []*Creature {
	out := make([]*Creature, 0, len(creatures))
	for _, c := range creatures {
		out = append(out, convertCreature(c))
	}
	return out
}

func convertSpecies(sp *entities.Species) *Species {
	return &Species{
		ID:        sp.ID,
		Name:      sp.Name,
		Types:     convertTypes(sp.Types),
		BaseStats: convertStats(sp.BaseStats),
		Rarity:    string(sp.Rarity),
		Moves:     append([]string(nil), sp.Moves...),
	}
}

func convertMove(m *entities.Move) *Move {
	return &Move{
		Name:     m.Name,
		Type:     string(m.Type),
		Power:    m.Power,
		Accuracy: m.Accuracy,
	}
}

func convertEncounter(e *encounter.Encounter) *Encounter {
	if e == nil {
		return nil
	}
	return &Encounter{
		Owner:     e.Owner,
		Wild:      convertCreature(e.Wild),
		Turns:     e.Turns,
		ExpiresAt: e.ExpiresAt.Unix(),
	}
}

func convertAction(a *battle.Action) *Action {
	out := &Action{
		AttackerID: a.AttackerID,
		DefenderID: a.DefenderID,
		DefenderHP: a.DefenderHP,
	}
	if a.Move != nil {
		out.Move = a.Move.Name
	}
	if a.Result != nil {
		out.Missed = a.Result.Missed
		out.Damage = a.Result.Damage
		out.Critical = a.Result.Critical
		out.Effectiveness = a.Result.Effectiveness
	}
	return out
}

func convertLevelUp(r *progression.LevelUpResult) *LevelUp {
	if r == nil {
		return nil
	}
	return &LevelUp{
		ExperienceGained: r.ExperienceGained,
		OldLevel:         r.OldLevel,
		NewLevel:         r.NewLevel,
		NewStats:         convertStats(r.NewStats),
	}
}

func convertEgg(e *entities.Egg, progress float64, ready bool) *Egg {
	if e == nil {
		return nil
	}
	return &Egg{
		ID:               e.ID,
		Parent1SpeciesID: e.Parent1SpeciesID,
		Parent2SpeciesID: e.Parent2SpeciesID,
		Genetics:         append([]int32(nil), e.Genetics...),
		IncubationSteps:  e.IncubationSteps,
		RequiredSteps:    e.RequiredSteps,
		State:            string(e.State),
		Owner:            e.Owner,
		Progress:         progress,
		Ready:            ready,
		CreatedAt:        e.CreatedAt,
		HatchedAt:        e.HatchedAt,
		HatchedInto:      e.HatchedInto,
	}
}

func convertEggView(v *breeding.EggView) *Egg {
	if v == nil {
		return nil
	}
	return convertEgg(v.Egg, v.Progress, v.Ready)
}

func convertListing(l *entities.Listing) *Listing {
	if l == nil {
		return nil
	}
	return &Listing{
		ID:             l.ID,
		NFTID:          l.NFTID,
		NFTType:        string(l.NFTKind),
		Rarity:         string(l.Rarity),
		SellerAddress:  l.Seller,
		Price:          l.Price,
		Status:         string(l.Status),
		ListedAt:       l.ListedAt,
		BuyerAddress:   l.Buyer,
		SoldAt:         l.SoldAt,
		CancelledAt:    l.CancelledAt,
		Fee:            l.Fee,
		SellerProceeds: l.SellerProceeds,
	}
}

func convertListings(listings []*entities.Listing) []*Listing {
	out := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		out = append(out, convertListing(l))
	}
	return out
}

func convertSale(s *sales.Sale) *Sale {
	return &Sale{
		ListingID:      s.ListingID,
		NFTID:          s.NFTID,
		NFTType:        string(s.NFTKind),
		SellerAddress:  s.Seller,
		BuyerAddress:   s.Buyer,
		Price:          s.Price,
		Fee:            s.Fee,
		SellerProceeds: s.SellerProceeds,
		SoldAt:         s.SoldAt,
	}
}
