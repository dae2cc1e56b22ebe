package egg

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	redisclient "github.com/KirkDiggler/pokechain-api/internal/redis"
)

const (
	eggKeyPrefix     = "egg:"
	ownerIndexPrefix = "egg:owner:"

	errEggNil     = "egg cannot be nil"
	errEggIDEmpty = "egg ID cannot be empty"
	errOwnerEmpty = "owner cannot be empty"
	errApplyNil   = "apply function cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis egg repository
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

// NewRedis creates a new Redis-backed egg repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Egg == nil {
		return nil, errors.InvalidArgument(errEggNil)
	}
	if input.Egg.ID == "" {
		return nil, errors.InvalidArgument(errEggIDEmpty)
	}
	if input.Egg.Owner == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	data, err := json.Marshal(input.Egg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal egg")
	}

	key := eggKeyPrefix + input.Egg.ID
	indexKey := ownerIndexPrefix + input.Egg.Owner

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to check existence")
		}
		if exists > 0 {
			return errors.AlreadyExistsf("egg with ID %s already exists", input.Egg.ID)
		}

		if input.MaxIncubating > 0 {
			if err := r.checkCapacity(ctx, tx, input.Egg.Owner, input.MaxIncubating); err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, indexKey, input.Egg.ID)
			return nil
		})
		return err
	}, key, indexKey)
	if err != nil {
		return nil, txError(err, "failed to create egg")
	}

	return &CreateOutput{Egg: input.Egg}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEggIDEmpty)
	}

	e, err := load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Egg: e}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Egg == nil {
		return nil, errors.InvalidArgument(errEggNil)
	}
	if input.Egg.ID == "" {
		return nil, errors.InvalidArgument(errEggIDEmpty)
	}

	existing, err := load(ctx, r.client, input.Egg.ID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Egg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal egg")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, eggKeyPrefix+input.Egg.ID, data, 0)
	if existing.Owner != input.Egg.Owner {
		pipe.SRem(ctx, ownerIndexPrefix+existing.Owner, input.Egg.ID)
		if input.Egg.Owner != "" {
			pipe.SAdd(ctx, ownerIndexPrefix+input.Egg.Owner, input.Egg.ID)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update egg")
	}

	return &UpdateOutput{Egg: input.Egg}, nil
}

func (r *redisRepository) Transition(ctx context.Context, input TransitionInput) (*TransitionOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEggIDEmpty)
	}
	if input.Apply == nil {
		return nil, errors.InvalidArgument(errApplyNil)
	}

	key := eggKeyPrefix + input.ID
	var updated *entities.Egg

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		e, err := load(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		previousOwner := e.Owner

		if err := input.Apply(e); err != nil {
			return err
		}
		if e.ID != input.ID {
			return errors.InvalidArgumentf("apply changed egg ID %s to %s", input.ID, e.ID)
		}

		moved := e.Owner != previousOwner
		if moved && e.Owner == "" {
			return errors.InvalidArgument(errOwnerEmpty)
		}
		if moved && input.MaxIncubating > 0 && e.Incubating() {
			if err := tx.Watch(ctx, ownerIndexPrefix+e.Owner).Err(); err != nil {
				return errors.Wrapf(err, "failed to watch owner index")
			}
			if err := r.checkCapacity(ctx, tx, e.Owner, input.MaxIncubating); err != nil {
				return err
			}
		}

		data, err := json.Marshal(e)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal egg")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if moved {
				pipe.SRem(ctx, ownerIndexPrefix+previousOwner, e.ID)
				pipe.SAdd(ctx, ownerIndexPrefix+e.Owner, e.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = e
		return nil
	}, key)
	if err != nil {
		return nil, txError(err, "failed to update egg")
	}

	return &TransitionOutput{Egg: updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEggIDEmpty)
	}

	existing, err := load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, eggKeyPrefix+input.ID)
	pipe.SRem(ctx, ownerIndexPrefix+existing.Owner, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete egg")
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
		return nil, errors.Wrapf(err, "failed to get eggs from index %s", indexKey)
	}

	eggs := make([]*entities.Egg, 0, len(ids))
	for _, id := range ids {
		e, err := load(ctx, r.client, id)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "egg not found, cleaning up index",
					"egg_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get egg %s", id)
		}
		if input.IncubatingOnly && !e.Incubating() {
			continue
		}
		eggs = append(eggs, e)
	}

	sort.Slice(eggs, func(i, j int) bool {
		if eggs[i].CreatedAt != eggs[j].CreatedAt {
			return eggs[i].CreatedAt < eggs[j].CreatedAt
		}
		return eggs[i].ID < eggs[j].ID
	})

	return &ListByOwnerOutput{Eggs: eggs}, nil
}

// checkCapacity counts owner's unhatched eggs through the watching
// transaction so a concurrent change to the index aborts the write
func (r *redisRepository) checkCapacity(ctx context.Context, tx *redis.Tx, owner string, limit int) error {
	ids, err := tx.SMembers(ctx, ownerIndexPrefix+owner).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to read egg index for %s", owner)
	}

	held := 0
	for _, id := range ids {
		e, err := load(ctx, tx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return err
		}
		if e.Incubating() && entities.SameAddress(e.Owner, owner) {
			held++
		}
	}

	if held >= limit {
		return errors.CapacityExceededf("owner already holds %d incubating eggs", held).
			WithMeta("owner", owner)
	}
	return nil
}

// txError keeps domain errors raised inside a transaction and maps a lost
// optimistic lock to Aborted
func txError(err error, message string) error {
	if redisclient.IsTxConflict(err) {
		return errors.Aborted("egg was modified concurrently")
	}
	var appErr *errors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.Wrap(err, message)
}

func load(ctx context.Context, c redis.Cmdable, id string) (*entities.Egg, error) {
	result, err := c.Get(ctx, eggKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("egg with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get egg")
	}

	var e entities.Egg
	if err := json.Unmarshal([]byte(result), &e); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal egg")
	}
	return &e, nil
}
