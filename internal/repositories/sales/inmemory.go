package sales

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

// InMemoryRepository keeps sale history in process. Used when no Postgres
// DSN is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	sales map[string]*Sale
}

// NewInMemory creates an empty history
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{sales: make(map[string]*Sale)}
}

var _ Repository = (*InMemoryRepository)(nil)

// Record stores a copy of the sale
func (r *InMemoryRepository) Record(_ context.Context, input RecordInput) (*RecordOutput, error) {
	if input.Sale == nil || input.Sale.ListingID == "" {
		return nil, errors.InvalidArgument("sale with a listing ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sales[input.Sale.ListingID]; !exists {
		sale := *input.Sale
		r.sales[sale.ListingID] = &sale
	}
	return &RecordOutput{}, nil
}

// List returns copies of matching sales newest first
func (r *InMemoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		if input.Wallet != "" && sale.Seller != input.Wallet && sale.Buyer != input.Wallet {
			continue
		}
		if input.NFTID != "" && sale.NFTID != input.NFTID {
			continue
		}
		cp := *sale
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SoldAt != out[j].SoldAt {
			return out[i].SoldAt > out[j].SoldAt
		}
		return out[i].ListingID < out[j].ListingID
	})
	if len(out) > limit {
		out = out[:limit]
	}

	return &ListOutput{Sales: out}, nil
}
