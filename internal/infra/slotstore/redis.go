package slotstore

import (
	"context"
	"encoding/json"
	"errors"

	"cridaa-booking/internal/domain/slot"
	"cridaa-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	slotKeyPrefix = "slot:"
	slotIndexKey  = "slots:index"

	// A transition retries only when WATCH aborts the transaction, which
	// means another writer touched the slot. With booking and cancelling
	// as the only writers the re-read then observes a status mismatch, so
	// the loop terminates quickly.
	transitionRetries = 3
)

// RedisStore keeps each slot as a JSON document under slot:<id> plus a
// set of ids for listing. Conditional transitions run under WATCH so a
// concurrent write to the same slot aborts the transaction instead of
// being overwritten.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func slotKey(id uuid.UUID) string {
	return slotKeyPrefix + id.String()
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	raw, err := s.rdb.Get(ctx, slotKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "slot not found", nil)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to fetch slot", err)
	}
	return decodeSlot(raw)
}

func (s *RedisStore) ListAvailable(ctx context.Context) ([]slot.Slot, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	available := all[:0]
	for _, sl := range all {
		if sl.IsAvailable() {
			available = append(available, sl)
		}
	}
	sortSlots(available)
	return available, nil
}

func (s *RedisStore) ListOwnedBy(ctx context.Context, userID uuid.UUID) ([]slot.Slot, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := all[:0]
	for _, sl := range all {
		if sl.IsBooked() && sl.IsOwnedBy(userID) {
			owned = append(owned, sl)
		}
	}
	sortSlots(owned)
	return owned, nil
}

func (s *RedisStore) TryTransition(
	ctx context.Context,
	id uuid.UUID,
	expected slot.Status,
	mutate func(*slot.Slot) error,
) (*slot.Slot, error) {
	key := slotKey(id)

	var updated *slot.Slot
	transition := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return infra.WrapRepoErr(infra.KindNotFound, "slot not found", nil)
		}
		if err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to fetch slot", err)
		}

		current, err := decodeSlot(raw)
		if err != nil {
			return err
		}
		if current.Status != expected {
			return infra.WrapRepoErr(infra.KindConflict, "slot status changed", nil)
		}

		if err := mutate(current); err != nil {
			return infra.WrapRepoErr(infra.KindConflict, "slot transition rejected", err)
		}
		if err := current.CheckConsistent(); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "mutation broke booking invariant", err)
		}

		data, err := json.Marshal(current)
		if err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to encode slot", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = current
		return nil
	}

	for range transitionRetries {
		err := s.rdb.Watch(ctx, transition, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			var repoErr infra.RepositoryError
			if errors.As(err, &repoErr) {
				return nil, err
			}
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "slot transition failed", err)
		}
		return updated, nil
	}

	return nil, infra.WrapRepoErr(infra.KindConflict, "slot contended beyond retry limit", nil)
}

func (s *RedisStore) Seed(ctx context.Context, slots []slot.Slot) error {
	count, err := s.rdb.SCard(ctx, slotIndexKey).Result()
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to inspect slot index", err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, sl := range slots {
			data, err := json.Marshal(&sl)
			if err != nil {
				return err
			}
			pipe.Set(ctx, slotKey(sl.ID), data, 0)
			pipe.SAdd(ctx, slotIndexKey, sl.ID.String())
		}
		return nil
	})
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to seed slots", err)
	}
	return nil
}

func (s *RedisStore) loadAll(ctx context.Context) ([]slot.Slot, error) {
	ids, err := s.rdb.SMembers(ctx, slotIndexKey).Result()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read slot index", err)
	}
	if len(ids) == 0 {
		return []slot.Slot{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = slotKeyPrefix + id
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to fetch slots", err)
	}

	slots := make([]slot.Slot, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a document: skip, it was deleted out of band.
			continue
		}
		sl, err := decodeSlot(raw)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *sl)
	}
	return slots, nil
}

func decodeSlot(raw string) (*slot.Slot, error) {
	var sl slot.Slot
	if err := json.Unmarshal([]byte(raw), &sl); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to decode slot", err)
	}
	return &sl, nil
}
