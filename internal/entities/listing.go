package entities

// ListingStatus is the lifecycle state of a listing. Sold and cancelled are terminal.
type ListingStatus string

// Listing states
const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusCancelled ListingStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed
func (s ListingStatus) Terminal() bool {
	return s == ListingStatusSold || s == ListingStatusCancelled
}

// Listing offers one NFT for a fixed price in the smallest currency unit
type Listing struct {
	ID             string        `json:"id"`
	NFTID          string        `json:"nft_id"`
	NFTKind        NFTKind       `json:"nft_type"`
	Rarity         Rarity        `json:"rarity,omitempty"`
	Seller         string        `json:"seller_address"`
	Price          int64         `json:"price"`
	Status         ListingStatus `json:"status"`
	ListedAt       int64         `json:"listed_at"`
	Buyer          string        `json:"buyer_address,omitempty"`
	SoldAt         int64         `json:"sold_at,omitempty"`
	CancelledAt    int64         `json:"cancelled_at,omitempty"`
	Fee            int64         `json:"fee,omitempty"`
	SellerProceeds int64         `json:"seller_proceeds,omitempty"`
}

// Clone returns a copy
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	out := *l
	return &out
}
