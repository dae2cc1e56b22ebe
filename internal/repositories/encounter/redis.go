package encounter

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pokechain-api/internal/redis"
)

const (
	// Key pattern: encounter:{owner}
	encounterKeyPrefix = "encounter:"
	// DefaultTTL is how long an untouched encounter lives
	DefaultTTL = 15 * time.Minute

	errEncounterNil     = "encounter cannot be nil"
	errOwnerEmpty       = "owner cannot be empty"
	errWildNil          = "wild creature cannot be nil"
	errEncounterExpired = "encounter has already expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for encounters
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Start(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validate(input.Encounter); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	enc := input.Encounter
	enc.CreatedAt = now
	enc.ExpiresAt = now.Add(ttl)

	if err := r.write(ctx, enc, ttl); err != nil {
		return nil, err
	}
	return &SaveOutput{Encounter: enc}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Owner == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	key := encounterKeyPrefix + input.Owner
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no active encounter for %s", input.Owner)
		}
		return nil, errors.Wrapf(err, "failed to get encounter from Redis")
	}

	var enc Encounter
	if err := json.Unmarshal([]byte(raw), &enc); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal encounter")
	}

	// redis expiry and the injected clock can disagree in tests
	if r.clock.Now().After(enc.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("encounter for %s has expired", input.Owner)
	}

	return &GetOutput{Encounter: &enc}, nil
}

func (r *redisRepository) Update(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validate(input.Encounter); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	if now.After(input.Encounter.ExpiresAt) {
		return nil, errors.FailedPrecondition(errEncounterExpired)
	}

	if err := r.write(ctx, input.Encounter, input.Encounter.ExpiresAt.Sub(now)); err != nil {
		return nil, err
	}
	return &SaveOutput{Encounter: input.Encounter}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Owner == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	if err := r.client.Del(ctx, encounterKeyPrefix+input.Owner).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete encounter from Redis")
	}
	return &DeleteOutput{}, nil
}

func (r *redisRepository) write(ctx context.Context, enc *Encounter, ttl time.Duration) error {
	data, err := json.Marshal(enc)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal encounter")
	}
	if err := r.client.Set(ctx, encounterKeyPrefix+enc.Owner, data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to store encounter in Redis")
	}
	return nil
}

func validate(enc *Encounter) error {
	if enc == nil {
		return errors.InvalidArgument(errEncounterNil)
	}
	if enc.Owner == "" {
		return errors.InvalidArgument(errOwnerEmpty)
	}
	if enc.Wild == nil {
		return errors.InvalidArgument(errWildNil)
	}
	return nil
}
