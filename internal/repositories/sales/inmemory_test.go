package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/sales"
)

const (
	seller = "0x1111111111111111111111111111111111111111"
	buyer  = "0x2222222222222222222222222222222222222222"
	other  = "0x3333333333333333333333333333333333333333"
)

// RepositoryTestSuite runs against any Repository implementation
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() sales.Repository
	repo    sales.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.repo = s.newRepo()
	s.ctx = context.Background()
}

func sale(id, nftID, from, to string, soldAt int64) *sales.Sale {
	return sales.FromListing(&entities.Listing{
		ID:             id,
		NFTID:          nftID,
		NFTKind:        entities.NFTKindCreature,
		Seller:         from,
		Buyer:          to,
		Price:          1000,
		Fee:            25,
		SellerProceeds: 975,
		SoldAt:         soldAt,
		Status:         entities.ListingStatusSold,
	})
}

func (s *RepositoryTestSuite) record(sl *sales.Sale) {
	_, err := s.repo.Record(s.ctx, sales.RecordInput{Sale: sl})
	s.Require().NoError(err)
}

func (s *RepositoryTestSuite) TestRecordAndListNewestFirst() {
	s.record(sale("lst_1", "crt_1", seller, buyer, 100))
	s.record(sale("lst_2", "crt_2", seller, other, 200))
	s.record(sale("lst_3", "crt_1", buyer, other, 300))

	out, err := s.repo.List(s.ctx, sales.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sales, 3)
	s.Equal("lst_3", out.Sales[0].ListingID)
	s.Equal(int64(975), out.Sales[0].SellerProceeds)
	s.Equal(entities.NFTKindCreature, out.Sales[0].NFTKind)

	byWallet, err := s.repo.List(s.ctx, sales.ListInput{Wallet: buyer})
	s.Require().NoError(err)
	s.Len(byWallet.Sales, 2)

	byNFT, err := s.repo.List(s.ctx, sales.ListInput{NFTID: "crt_1", Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(byNFT.Sales, 1)
	s.Equal("lst_3", byNFT.Sales[0].ListingID)
}

func (s *RepositoryTestSuite) TestRecordIsIdempotent() {
	s.record(sale("lst_1", "crt_1", seller, buyer, 100))
	s.record(sale("lst_1", "crt_1", seller, buyer, 100))

	out, err := s.repo.List(s.ctx, sales.ListInput{})
	s.Require().NoError(err)
	s.Len(out.Sales, 1)
}

func (s *RepositoryTestSuite) TestRecordRequiresListingID() {
	_, err := s.repo.Record(s.ctx, sales.RecordInput{Sale: &sales.Sale{}})
	s.Error(err)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func() sales.Repository { return sales.NewInMemory() }})
}
