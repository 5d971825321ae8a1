package streak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	counterKeyPrefix  = "streak||"
	maxUpdateAttempts = 5
)

var (
	ErrCorruptCounter    = errors.New("corrupt streak counter")
	ErrCounterContention = errors.New("streak counter update contention")
)

// RedisCounterStore keeps one JSON encoded Counter per member and gym.
type RedisCounterStore struct {
	redisClient *redis.Client
}

func NewRedisCounterStore(redisClient *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{
		redisClient: redisClient,
	}
}

func counterKey(memberID, gymID int) string {
	return fmt.Sprintf("%s%d||%d", counterKeyPrefix, gymID, memberID)
}

// Update runs a read-modify-write of the member counter under WATCH, so a
// concurrent writer makes the transaction fail and the update is retried
// against the fresh value. update gets nil when nothing usable is stored.
func (s *RedisCounterStore) Update(
	ctx context.Context,
	memberID, gymID int,
	update func(stored *Counter) (Counter, error),
) (Counter, error) {
	key := counterKey(memberID, gymID)

	var updated Counter
	txf := func(tx *redis.Tx) error {
		stored, err := readCounter(ctx, tx, key)
		if errors.Is(err, ErrCorruptCounter) {
			log.Warnf("streak counter [%s]: %s, recomputing", key, err)
			stored, err = nil, nil
		}
		if err != nil {
			return err
		}

		counter, err := update(stored)
		if err != nil {
			return err
		}

		counterJson, err := json.Marshal(counter)
		if err != nil {
			return fmt.Errorf("marshal counter: %w", err)
		}

		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(counterJson), 0)
			return nil
		}); err != nil {
			return err
		}

		updated = counter
		return nil
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := s.redisClient.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return Counter{}, err
		}
		log.Debugf("streak counter [%s]: changed during update, attempt %d", key, attempt)
	}

	return Counter{}, ErrCounterContention
}

// readCounter returns nil if nothing is stored yet.
func readCounter(ctx context.Context, tx *redis.Tx, key string) (*Counter, error) {
	val, err := tx.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var counter Counter
	if err := json.Unmarshal([]byte(val), &counter); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptCounter, err)
	}

	return &counter, nil
}
