package creature

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pokechain-api/internal/redis"
)

const (
	creatureKeyPrefix = "creature:"
	ownerIndexPrefix  = "creature:owner:"

	errCreatureNil     = "creature cannot be nil"
	errCreatureIDEmpty = "creature ID cannot be empty"
	errOwnerEmpty      = "owner cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis creature repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
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

// NewRedis creates a new Redis-backed creature repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument(errCreatureNil)
	}
	if input.Creature.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	key := creatureKeyPrefix + input.Creature.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("creature with ID %s already exists", input.Creature.ID)
	}

	now := r.clock.Now().Unix()
	if input.Creature.CreatedAt == 0 {
		input.Creature.CreatedAt = now
	}
	input.Creature.UpdatedAt = now

	data, err := json.Marshal(input.Creature)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal creature")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if input.Creature.Owner != "" {
		pipe.SAdd(ctx, ownerIndexPrefix+input.Creature.Owner, input.Creature.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create creature")
	}

	return &CreateOutput{Creature: input.Creature}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	existing, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Creature: existing}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument(errCreatureNil)
	}
	if input.Creature.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	existing, err := r.load(ctx, input.Creature.ID)
	if err != nil {
		return nil, err
	}

	input.Creature.CreatedAt = existing.CreatedAt
	input.Creature.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(input.Creature)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal creature")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, creatureKeyPrefix+input.Creature.ID, data, 0)

	if existing.Owner != input.Creature.Owner {
		if existing.Owner != "" {
			pipe.SRem(ctx, ownerIndexPrefix+existing.Owner, input.Creature.ID)
		}
		if input.Creature.Owner != "" {
			pipe.SAdd(ctx, ownerIndexPrefix+input.Creature.Owner, input.Creature.ID)
		}
		slog.InfoContext(ctx, "creature changed owner",
			"creature_id", input.Creature.ID,
			"from", existing.Owner,
			"to", input.Creature.Owner)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update creature")
	}

	return &UpdateOutput{Creature: input.Creature}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	existing, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, creatureKeyPrefix+input.ID)
	if existing.Owner != "" {
		pipe.SRem(ctx, ownerIndexPrefix+existing.Owner, input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete creature")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.Owner == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	indexKey := ownerIndexPrefix + input.Owner
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get creatures from index %s", indexKey)
	}

	creatures := make([]*entities.Creature, 0, len(ids))
	for _, id := range ids {
		c, err := r.load(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "creature not found, cleaning up index",
					"creature_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get creature %s", id)
		}
		creatures = append(creatures, c)
	}

	sort.Slice(creatures, func(i, j int) bool {
		if creatures[i].CreatedAt != creatures[j].CreatedAt {
			return creatures[i].CreatedAt < creatures[j].CreatedAt
		}
		return creatures[i].ID < creatures[j].ID
	})

	return &ListByOwnerOutput{Creatures: creatures}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*entities.Creature, error) {
	result, err := r.client.Get(ctx, creatureKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("creature with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get creature")
	}

	var c entities.Creature
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal creature")
	}
	return &c, nil
}
