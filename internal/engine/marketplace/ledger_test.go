package marketplace_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokechain-api/internal/engine/marketplace"
	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
)

const (
	seller = "0x1111111111111111111111111111111111111111"
	buyer  = "0x2222222222222222222222222222222222222222"
)

type LedgerTestSuite struct {
	suite.Suite
	clock  *clock.Fixed
	ledger *marketplace.Ledger
}

func (s *LedgerTestSuite) SetupTest() {
	s.clock = clock.NewFixed(time.Unix(1_700_000_000, 0))

	var err error
	s.ledger, err = marketplace.NewLedger(&marketplace.Config{
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("lst"),
	})
	s.Require().NoError(err)
}

func (s *LedgerTestSuite) list(price int64) *entities.Listing {
	listing, err := s.ledger.CreateListing(&marketplace.CreateListingInput{
		NFTID:   "crt_1",
		NFTKind: entities.NFTKindCreature,
		Rarity:  entities.RarityRare,
		Seller:  seller,
		Price:   price,
	})
	s.Require().NoError(err)
	return listing
}

func (s *LedgerTestSuite) TestDefaultFee() {
	s.True(s.ledger.FeePercent().Equal(decimal.RequireFromString("2.5")))
}

func (s *LedgerTestSuite) TestCreateListing() {
	listing := s.list(500)
	s.Equal("lst_1", listing.ID)
	s.Equal(entities.ListingStatusActive, listing.Status)
	s.Equal(int64(1_700_000_000), listing.ListedAt)
	s.Empty(listing.Buyer)
}

func (s *LedgerTestSuite) TestCreateListingInvalidPrice() {
	for _, price := range []int64{0, -1} {
		_, err := s.ledger.CreateListing(&marketplace.CreateListingInput{
			NFTID: "crt_1", NFTKind: entities.NFTKindCreature, Seller: seller, Price: price,
		})
		s.True(errors.HasReason(err, errors.ReasonInvalidPrice), "price %d", price)
	}
}

func (s *LedgerTestSuite) TestCreateListingInvalidKind() {
	_, err := s.ledger.CreateListing(&marketplace.CreateListingInput{
		NFTID: "crt_1", NFTKind: "land", Seller: seller, Price: 10,
	})
	s.True(errors.HasReason(err, errors.ReasonInvalidInput))
}

func (s *LedgerTestSuite) TestPurchaseComputesFee() {
	listing := s.list(1_000_000_000)
	s.clock.Advance(time.Minute)

	err := s.ledger.Purchase(listing, &marketplace.PurchaseInput{Buyer: buyer, BuyerBalance: 1_000_000_000})
	s.Require().NoError(err)

	s.Equal(entities.ListingStatusSold, listing.Status)
	s.Equal(buyer, listing.Buyer)
	s.Equal(int64(1_700_000_060), listing.SoldAt)
	s.Equal(int64(25_000_000), listing.Fee)
	s.Equal(int64(975_000_000), listing.SellerProceeds)

	err = s.ledger.Purchase(listing, &marketplace.PurchaseInput{Buyer: buyer, BuyerBalance: 1_000_000_000})
	s.True(errors.HasReason(err, errors.ReasonNotActive))
}

func (s *LedgerTestSuite) TestPurchaseFeeFloors() {
	fee, proceeds := s.ledger.Split(99)
	s.Equal(int64(2), fee)
	s.Equal(int64(97), proceeds)

	fee, proceeds = s.ledger.Split(39)
	s.Equal(int64(0), fee)
	s.Equal(int64(39), proceeds)
}

func (s *LedgerTestSuite) TestPurchaseInsufficientBalance() {
	listing := s.list(100)
	err := s.ledger.Purchase(listing, &marketplace.PurchaseInput{Buyer: buyer, BuyerBalance: 99})
	s.True(errors.HasReason(err, errors.ReasonInsufficientBalance))
	s.Equal(entities.ListingStatusActive, listing.Status)
}

func (s *LedgerTestSuite) TestPurchaseBySellerRejected() {
	listing := s.list(100)
	err := s.ledger.Purchase(listing, &marketplace.PurchaseInput{Buyer: seller, BuyerBalance: 1000})
	s.True(errors.HasReason(err, errors.ReasonUnauthorized))
}

func (s *LedgerTestSuite) TestCancel() {
	listing := s.list(100)

	err := s.ledger.Cancel(listing, buyer)
	s.True(errors.HasReason(err, errors.ReasonUnauthorized))

	s.Require().NoError(s.ledger.Cancel(listing, seller))
	s.Equal(entities.ListingStatusCancelled, listing.Status)
	s.Equal(int64(1_700_000_000), listing.CancelledAt)

	err = s.ledger.Cancel(listing, seller)
	s.True(errors.HasReason(err, errors.ReasonNotActive))

	err = s.ledger.Purchase(listing, &marketplace.PurchaseInput{Buyer: buyer, BuyerBalance: 1000})
	s.True(errors.HasReason(err, errors.ReasonNotActive))
}

func (s *LedgerTestSuite) TestReopenClearsSettlement() {
	listing := s.list(1000)

	err := s.ledger.Reopen(listing)
	s.True(errors.IsFailedPrecondition(err))

	s.Require().NoError(s.ledger.Purchase(listing, &marketplace.PurchaseInput{Buyer: buyer, BuyerBalance: 1000}))
	s.Require().NoError(s.ledger.Reopen(listing))

	s.Equal(entities.ListingStatusActive, listing.Status)
	s.Empty(listing.Buyer)
	s.Zero(listing.SoldAt)
	s.Zero(listing.Fee)
	s.Zero(listing.SellerProceeds)
	s.Equal(int64(1_700_000_000), listing.ListedAt)
}

func (s *LedgerTestSuite) TestConfigValidation() {
	_, err := marketplace.NewLedger(&marketplace.Config{
		FeePercent:  decimal.NewFromInt(101),
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("lst"),
	})
	s.Error(err)

	_, err = marketplace.NewLedger(nil)
	s.Error(err)
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
