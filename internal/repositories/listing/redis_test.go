package listing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	redisclient "github.com/KirkDiggler/pokechain-api/internal/redis"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/listing"
	"github.com/KirkDiggler/pokechain-api/internal/testutils"
)

const (
	seller = "0x1111111111111111111111111111111111111111"
	buyer  = "0x2222222222222222222222222222222222222222"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    listing.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := listing.NewRedis(&listing.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func newListing(id, nftID string, listedAt int64) *entities.Listing {
	return &entities.Listing{
		ID:       id,
		NFTID:    nftID,
		NFTKind:  entities.NFTKindCreature,
		Seller:   seller,
		Price:    100,
		Status:   entities.ListingStatusActive,
		ListedAt: listedAt,
	}
}

func sell(l *entities.Listing) error {
	if l.Status != entities.ListingStatusActive {
		return errors.NotActivef("listing %s is %s", l.ID, l.Status)
	}
	l.Status = entities.ListingStatusSold
	l.Buyer = buyer
	return nil
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_1", "crt_1", 10)})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, listing.GetInput{ID: "lst_1"})
	s.Require().NoError(err)
	s.Equal("crt_1", out.Listing.NFTID)
	s.Equal(entities.ListingStatusActive, out.Listing.Status)
}

func (s *RedisRepositoryTestSuite) TestCreateRejectsSecondActiveListingForNFT() {
	_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_1", "crt_1", 10)})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_2", "crt_1", 11)})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestRelistAfterCancel() {
	_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_1", "crt_1", 10)})
	s.Require().NoError(err)

	_, err = s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: func(l *entities.Listing) error {
		l.Status = entities.ListingStatusCancelled
		return nil
	}})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_2", "crt_1", 11)})
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestCreateRejectsInactive() {
	l := newListing("lst_1", "crt_1", 10)
	l.Status = entities.ListingStatusSold
	_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: l})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestListOrderAndActive() {
	for _, l := range []*entities.Listing{
		newListing("lst_c", "crt_3", 30),
		newListing("lst_a", "crt_1", 10),
		newListing("lst_b", "crt_2", 20),
	} {
		_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: l})
		s.Require().NoError(err)
	}

	_, err := s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_b", Apply: sell})
	s.Require().NoError(err)

	all, err := s.repo.List(s.ctx, listing.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"lst_a", "lst_b", "lst_c"}, ids(all.Listings))

	active, err := s.repo.List(s.ctx, listing.ListInput{ActiveOnly: true})
	s.Require().NoError(err)
	s.Equal([]string{"lst_a", "lst_c"}, ids(active.Listings))

	bySeller, err := s.repo.List(s.ctx, listing.ListInput{Seller: seller, ActiveOnly: true})
	s.Require().NoError(err)
	s.Equal([]string{"lst_a", "lst_c"}, ids(bySeller.Listings))

	none, err := s.repo.List(s.ctx, listing.ListInput{Seller: buyer})
	s.Require().NoError(err)
	s.Empty(none.Listings)
}

func (s *RedisRepositoryTestSuite) TestTransitionPropagatesApplyError() {
	_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_1", "crt_1", 10)})
	s.Require().NoError(err)

	_, err = s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: sell})
	s.Require().NoError(err)

	_, err = s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: sell})
	s.True(errors.HasReason(err, errors.ReasonNotActive))
}

func (s *RedisRepositoryTestSuite) TestTransitionNotFound() {
	_, err := s.repo.Transition(s.ctx, listing.TransitionInput{ID: "missing", Apply: sell})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestConcurrentPurchasesHaveOneWinner() {
	_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_1", "crt_1", 10)})
	s.Require().NoError(err)

	const buyers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: sell})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			s.True(errors.HasReason(err, errors.ReasonNotActive) || errors.IsAborted(err), "unexpected error %v", err)
		}()
	}
	wg.Wait()

	s.Equal(1, wins)
}

func (s *RedisRepositoryTestSuite) TestGetActiveByNFT() {
	_, err := s.repo.GetActiveByNFT(s.ctx, listing.GetActiveByNFTInput{NFTID: "crt_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_1", "crt_1", 10)})
	s.Require().NoError(err)

	out, err := s.repo.GetActiveByNFT(s.ctx, listing.GetActiveByNFTInput{NFTID: "crt_1"})
	s.Require().NoError(err)
	s.Equal("lst_1", out.Listing.ID)

	_, err = s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: sell})
	s.Require().NoError(err)

	_, err = s.repo.GetActiveByNFT(s.ctx, listing.GetActiveByNFTInput{NFTID: "crt_1"})
	s.True(errors.IsNotFound(err))
}

func reopen(l *entities.Listing) error {
	l.Status = entities.ListingStatusActive
	l.Buyer = ""
	return nil
}

func (s *RedisRepositoryTestSuite) TestTransitionReopenRestoresIndexes() {
	_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_1", "crt_1", 10)})
	s.Require().NoError(err)
	_, err = s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: sell})
	s.Require().NoError(err)

	out, err := s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: reopen})
	s.Require().NoError(err)
	s.Equal(entities.ListingStatusActive, out.Listing.Status)

	active, err := s.repo.List(s.ctx, listing.ListInput{ActiveOnly: true})
	s.Require().NoError(err)
	s.Equal([]string{"lst_1"}, ids(active.Listings))

	byNFT, err := s.repo.GetActiveByNFT(s.ctx, listing.GetActiveByNFTInput{NFTID: "crt_1"})
	s.Require().NoError(err)
	s.Equal("lst_1", byNFT.Listing.ID)

	_, err = s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_2", "crt_1", 11)})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestTransitionReopenRejectsRelistedNFT() {
	_, err := s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_1", "crt_1", 10)})
	s.Require().NoError(err)
	_, err = s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: sell})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, listing.CreateInput{Listing: newListing("lst_2", "crt_1", 11)})
	s.Require().NoError(err)

	_, err = s.repo.Transition(s.ctx, listing.TransitionInput{ID: "lst_1", Apply: reopen})
	s.True(errors.IsAlreadyExists(err))

	out, err := s.repo.Get(s.ctx, listing.GetInput{ID: "lst_1"})
	s.Require().NoError(err)
	s.Equal(entities.ListingStatusSold, out.Listing.Status)
}

func ids(ls []*entities.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
