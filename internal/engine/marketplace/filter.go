package marketplace

import (
	"github.com/KirkDiggler/pokechain-api/internal/entities"
)

// ListingFilter narrows a listing set. Empty fields match everything; a nil
// price bound is unbounded, so MaxPrice pointing at 0 matches nothing priced.
type ListingFilter struct {
	Kind     entities.NFTKind
	MinPrice *int64
	MaxPrice *int64
	Rarity   entities.Rarity
	// Status is not part of the marketplace query; orchestrators set it to
	// active when browsing
	Status entities.ListingStatus
}

// Matches reports whether one listing passes the filter
func (f ListingFilter) Matches(l *entities.Listing) bool {
	if l == nil {
		return false
	}
	if f.Kind != "" && l.NFTKind != f.Kind {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.Rarity != "" && l.Rarity != f.Rarity {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	return true
}

// PriceBound returns a bound for ListingFilter.MinPrice or MaxPrice
func PriceBound(v int64) *int64 {
	return &v
}

// Filter returns the matching listings in input order. The input is not modified.
func Filter(listings []*entities.Listing, f ListingFilter) []*entities.Listing {
	out := make([]*entities.Listing, 0, len(listings))
	for _, l := range listings {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}
