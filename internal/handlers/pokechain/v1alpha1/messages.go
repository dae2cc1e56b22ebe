package v1alpha1

// Stats is the wire form of a stat block
type Stats struct {
	HP      int32 `json:"hp"`
	Attack  int32 `json:"attack"`
	Defense int32 `json:"defense"`
	Speed   int32 `json:"speed"`
}

// Creature is the wire form of an owned or wild creature
type Creature struct {
	ID         string   `json:"id"`
	SpeciesID  string   `json:"species_id"`
	Name       string   `json:"name"`
	Level      int32    `json:"level"`
	Experience int64    `json:"experience"`
	Stats      Stats    `json:"stats"`
	Types      []string `json:"types"`
	CurrentHP  int32    `json:"current_hp"`
	Owner      string   `json:"owner,omitempty"`
	Rarity     string   `json:"rarity,omitempty"`
}

// Species is the wire form of a catalog species
type Species struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Types     []string `json:"types"`
	BaseStats Stats    `json:"base_stats"`
	Rarity    string   `json:"rarity"`
	Moves     []string `json:"moves"`
}

// Move is the wire form of a catalog move
type Move struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Power    int32   `json:"power"`
	Accuracy float64 `json:"accuracy"`
}

// Encounter is the wire form of an active wild battle
type Encounter struct {
	Owner     string    `json:"owner"`
	Wild      *Creature `json:"wild"`
	Turns     int32     `json:"turns"`
	ExpiresAt int64     `json:"expires_at"`
}

// Action is one attack within a turn
type Action struct {
	AttackerID    string  `json:"attacker_id"`
	DefenderID    string  `json:"defender_id"`
	Move          string  `json:"move"`
	Missed        bool    `json:"missed"`
	Damage        int32   `json:"damage"`
	Critical      bool    `json:"critical"`
	Effectiveness float64 `json:"effectiveness"`
	DefenderHP    int32   `json:"defender_hp"`
}

// LevelUp summarizes experience granted after a win
type LevelUp struct {
	ExperienceGained int64 `json:"experience_gained"`
	OldLevel         int32 `json:"old_level"`
	NewLevel         int32 `json:"new_level"`
	NewStats         Stats `json:"new_stats"`
}

// Egg is the wire form of an egg with its derived progress
type Egg struct {
	ID               string  `json:"id"`
	Parent1SpeciesID string  `json:"parent1_species_id"`
	Parent2SpeciesID string  `json:"parent2_species_id"`
	Genetics         []int32 `json:"genetics"`
	IncubationSteps  int64   `json:"incubation_steps"`
	RequiredSteps    int64   `json:"required_steps"`
	State            string  `json:"state"`
	Owner            string  `json:"owner"`
	Progress         float64 `json:"progress"`
	Ready            bool    `json:"ready"`
	CreatedAt        int64   `json:"created_at"`
	HatchedAt        int64   `json:"hatched_at,omitempty"`
	HatchedInto      string  `json:"hatched_into,omitempty"`
}

// Listing is the wire form of a marketplace listing
type Listing struct {
	ID             string `json:"id"`
	NFTID          string `json:"nft_id"`
	NFTType        string `json:"nft_type"`
	Rarity         string `json:"rarity,omitempty"`
	SellerAddress  string `json:"seller_address"`
	Price          int64  `json:"price"`
	Status         string `json:"status"`
	ListedAt       int64  `json:"listed_at"`
	BuyerAddress   string `json:"buyer_address,omitempty"`
	SoldAt         int64  `json:"sold_at,omitempty"`
	CancelledAt    int64  `json:"cancelled_at,omitempty"`
	Fee            int64  `json:"fee,omitempty"`
	SellerProceeds int64  `json:"seller_proceeds,omitempty"`
}

// Sale is the wire form of a settled purchase
type Sale struct {
	ListingID      string `json:"listing_id"`
	NFTID          string `json:"nft_id"`
	NFTType        string `json:"nft_type"`
	SellerAddress  string `json:"seller_address"`
	BuyerAddress   string `json:"buyer_address"`
	Price          int64  `json:"price"`
	Fee            int64  `json:"fee"`
	SellerProceeds int64  `json:"seller_proceeds"`
	SoldAt         int64  `json:"sold_at"`
}

type GetCreatureRequest struct {
	CreatureID string `json:"creature_id"`
}

type GetCreatureResponse struct {
	Creature *Creature `json:"creature"`
}

type ListCreaturesRequest struct {
	Owner string `json:"owner"`
}

type ListCreaturesResponse struct {
	Creatures []*Creature `json:"creatures"`
}

type ClaimStarterRequest struct {
	Owner     string `json:"owner"`
	SpeciesID string `json:"species_id"`
}

type ClaimStarterResponse struct {
	Creature *Creature `json:"creature"`
}

type HealCreatureRequest struct {
	Owner      string `json:"owner"`
	CreatureID string `json:"creature_id"`
}

type HealCreatureResponse struct {
	Creature *Creature `json:"creature"`
}

type StartEncounterRequest struct {
	Owner     string `json:"owner"`
	SpeciesID string `json:"species_id,omitempty"`
	Level     int32  `json:"level,omitempty"`
}

type StartEncounterResponse struct {
	Encounter *Encounter `json:"encounter"`
}

type GetEncounterRequest struct {
	Owner string `json:"owner"`
}

type GetEncounterResponse struct {
	Encounter *Encounter `json:"encounter"`
}

type ExecuteTurnRequest struct {
	Owner      string `json:"owner"`
	CreatureID string `json:"creature_id"`
	Move       string `json:"move"`
}

type ExecuteTurnResponse struct {
	Outcome  string    `json:"outcome"`
	Actions  []*Action `json:"actions"`
	Creature *Creature `json:"creature"`
	Wild     *Creature `json:"wild"`
	LevelUp  *LevelUp  `json:"level_up,omitempty"`
}

type FleeRequest struct {
	Owner string `json:"owner"`
}

type FleeResponse struct{}

type AttemptCaptureRequest struct {
	Owner string `json:"owner"`
}

type AttemptCaptureResponse struct {
	Caught   bool      `json:"caught"`
	Rate     float64   `json:"rate"`
	Creature *Creature `json:"creature,omitempty"`
}

type BreedRequest struct {
	Owner     string `json:"owner"`
	Parent1ID string `json:"parent1_id"`
	Parent2ID string `json:"parent2_id"`
}

type BreedResponse struct {
	Egg *Egg `json:"egg"`
}

type ListEggsRequest struct {
	Owner          string `json:"owner"`
	IncubatingOnly bool   `json:"incubating_only,omitempty"`
}

type ListEggsResponse struct {
	Eggs []*Egg `json:"eggs"`
}

type AddStepsRequest struct {
	Owner string `json:"owner"`
	EggID string `json:"egg_id"`
	Steps int64  `json:"steps"`
}

type AddStepsResponse struct {
	Egg *Egg `json:"egg"`
}

type HatchEggRequest struct {
	Owner string `json:"owner"`
	EggID string `json:"egg_id"`
}

type HatchEggResponse struct {
	Egg      *Egg      `json:"egg"`
	Creature *Creature `json:"creature"`
}

type CreateListingRequest struct {
	SellerAddress string `json:"seller_address"`
	NFTID         string `json:"nft_id"`
	NFTType       string `json:"nft_type"`
	Price         int64  `json:"price"`
}

type CreateListingResponse struct {
	Listing *Listing `json:"listing"`
}

// PurchaseListingRequest leaves BuyerBalance unset to have it read from the chain
type PurchaseListingRequest struct {
	BuyerAddress string `json:"buyer_address"`
	ListingID    string `json:"listing_id"`
	BuyerBalance *int64 `json:"buyer_balance,omitempty"`
}

type PurchaseListingResponse struct {
	Listing *Listing `json:"listing"`
}

type CancelListingRequest struct {
	Requester string `json:"requester"`
	ListingID string `json:"listing_id"`
}

type CancelListingResponse struct {
	Listing *Listing `json:"listing"`
}

type GetListingRequest struct {
	ListingID string `json:"listing_id"`
}

type GetListingResponse struct {
	Listing *Listing `json:"listing"`
}

type SearchListingsRequest struct {
	SellerAddress string `json:"seller_address,omitempty"`
	NFTType       string `json:"nft_type,omitempty"`
	MinPrice      *int64 `json:"min_price,omitempty"`
	MaxPrice      *int64 `json:"max_price,omitempty"`
	Rarity        string `json:"rarity,omitempty"`
	Status        string `json:"status,omitempty"`
}

type SearchListingsResponse struct {
	Listings []*Listing `json:"listings"`
}

type GetSalesHistoryRequest struct {
	Wallet string `json:"wallet,omitempty"`
	NFTID  string `json:"nft_id,omitempty"`
	Limit  int32  `json:"limit,omitempty"`
}

type GetSalesHistoryResponse struct {
	Sales []*Sale `json:"sales"`
}

type ListSpeciesRequest struct{}

type ListSpeciesResponse struct {
	Species []*Species `json:"species"`
}

type ListMovesRequest struct{}

type ListMovesResponse struct {
	Moves []*Move `json:"moves"`
}
