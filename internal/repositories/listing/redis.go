package listing

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	redisclient "github.com/KirkDiggler/pokechain-api/internal/redis"
)

const (
	listingKeyPrefix  = "listing:"
	allIndexKey       = "listing:index:all"
	activeIndexKey    = "listing:index:active"
	sellerIndexPrefix = "listing:seller:"
	// holds the ID of the active listing for an NFT
	nftActivePrefix = "listing:nft:"

	errListingNil     = "listing cannot be nil"
	errListingIDEmpty = "listing ID cannot be empty"
	errApplyNil       = "apply function cannot be nil"
	errNFTIDEmpty     = "nft ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis listing repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed listing repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	l := input.Listing
	if l == nil {
		return nil, errors.InvalidArgument(errListingNil)
	}
	if l.ID == "" {
		return nil, errors.InvalidArgument(errListingIDEmpty)
	}
	if l.Status != entities.ListingStatusActive {
		return nil, errors.InvalidArgumentf("new listing must be active, got %s", l.Status)
	}

	data, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal listing")
	}

	nftKey := nftActivePrefix + l.NFTID
	key := listingKeyPrefix + l.ID

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, nftKey).Result()
		if err != nil && err != redis.Nil {
			return errors.Wrapf(err, "failed to check active listing for %s", l.NFTID)
		}
		if err == nil {
			return errors.AlreadyExistsf("nft %s is already listed as %s", l.NFTID, current)
		}

		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to check existence")
		}
		if exists > 0 {
			return errors.AlreadyExistsf("listing with ID %s already exists", l.ID)
		}

		member := redis.Z{Score: float64(l.ListedAt), Member: l.ID}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.Set(ctx, nftKey, l.ID, 0)
			pipe.ZAdd(ctx, allIndexKey, member)
			pipe.ZAdd(ctx, activeIndexKey, member)
			pipe.ZAdd(ctx, sellerIndexPrefix+l.Seller, member)
			return nil
		})
		return err
	}, nftKey, key)
	if err != nil {
		return nil, r.txError(err, "failed to create listing")
	}

	return &CreateOutput{Listing: l}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errListingIDEmpty)
	}

	result, err := r.client.Get(ctx, listingKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("listing with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get listing")
	}

	l, err := decode(result)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Listing: l}, nil
}

func (r *redisRepository) GetActiveByNFT(ctx context.Context, input GetActiveByNFTInput) (*GetActiveByNFTOutput, error) {
	if input.NFTID == "" {
		return nil, errors.InvalidArgument(errNFTIDEmpty)
	}

	id, err := r.client.Get(ctx, nftActivePrefix+input.NFTID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("nft %s has no active listing", input.NFTID)
		}
		return nil, errors.Wrapf(err, "failed to get active listing for %s", input.NFTID)
	}

	out, err := r.Get(ctx, GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	if out.Listing.Status != entities.ListingStatusActive {
		return nil, errors.NotFoundf("nft %s has no active listing", input.NFTID)
	}
	return &GetActiveByNFTOutput{Listing: out.Listing}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	indexKey := allIndexKey
	switch {
	case input.Seller != "":
		indexKey = sellerIndexPrefix + input.Seller
	case input.ActiveOnly:
		indexKey = activeIndexKey
	}

	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read index %s", indexKey)
	}
	if len(ids) == 0 {
		return &ListOutput{Listings: []*entities.Listing{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = listingKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load listings")
	}

	listings := make([]*entities.Listing, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.WarnContext(ctx, "listing missing from index",
				"listing_id", ids[i],
				"index_key", indexKey)
			continue
		}
		l, err := decode(raw)
		if err != nil {
			return nil, err
		}
		if input.ActiveOnly && l.Status != entities.ListingStatusActive {
			continue
		}
		listings = append(listings, l)
	}

	return &ListOutput{Listings: listings}, nil
}

func (r *redisRepository) Transition(ctx context.Context, input TransitionInput) (*TransitionOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errListingIDEmpty)
	}
	if input.Apply == nil {
		return nil, errors.InvalidArgument(errApplyNil)
	}

	key := listingKeyPrefix + input.ID
	var updated *entities.Listing

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("listing with ID %s not found", input.ID)
			}
			return errors.Wrapf(err, "failed to get listing")
		}

		l, err := decode(raw)
		if err != nil {
			return err
		}
		before := l.Status

		if err := input.Apply(l); err != nil {
			return err
		}

		nftKey := nftActivePrefix + l.NFTID
		reopened := before.Terminal() && l.Status == entities.ListingStatusActive
		if reopened {
			if err := tx.Watch(ctx, nftKey).Err(); err != nil {
				return errors.Wrapf(err, "failed to watch active listing for %s", l.NFTID)
			}
			current, err := tx.Get(ctx, nftKey).Result()
			if err != nil && err != redis.Nil {
				return errors.Wrapf(err, "failed to check active listing for %s", l.NFTID)
			}
			if err == nil && current != l.ID {
				return errors.AlreadyExistsf("nft %s was relisted as %s", l.NFTID, current)
			}
		}

		data, err := json.Marshal(l)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal listing")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if before == entities.ListingStatusActive && l.Status.Terminal() {
				pipe.ZRem(ctx, activeIndexKey, l.ID)
				pipe.Del(ctx, nftKey)
			}
			if reopened {
				pipe.ZAdd(ctx, activeIndexKey, redis.Z{Score: float64(l.ListedAt), Member: l.ID})
				pipe.Set(ctx, nftKey, l.ID, 0)
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = l
		return nil
	}, key)
	if err != nil {
		return nil, r.txError(err, "failed to update listing")
	}

	return &TransitionOutput{Listing: updated}, nil
}

// txError keeps domain errors raised inside a transaction and maps a lost
// optimistic lock to Aborted
func (r *redisRepository) txError(err error, message string) error {
	if redisclient.IsTxConflict(err) {
		return errors.Aborted("listing was modified concurrently")
	}
	var appErr *errors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.Wrap(err, message)
}

func decode(raw string) (*entities.Listing, error) {
	var l entities.Listing
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal listing")
	}
	return &l, nil
}
