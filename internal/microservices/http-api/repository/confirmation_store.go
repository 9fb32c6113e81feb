package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"yamdb/internal/middleware/auth"
)

// ConfirmationStore keeps the one outstanding confirmation code per user.
// Saving a new code replaces the previous one; consuming removes it.
type ConfirmationStore interface {
	Save(ctx context.Context, userID, code string, ttl time.Duration) error
	// Consume reports true only for the caller that removed a matching code.
	Consume(ctx context.Context, userID, code string) (bool, error)
}

type redisConfirmationStore struct {
	client *redis.Client
	// beforeCommit runs between the code check and the delete; tests use it
	// to land a competing write inside the watched window.
	beforeCommit func()
}

func NewRedisConfirmationStore(client *redis.Client) ConfirmationStore {
	return &redisConfirmationStore{client: client}
}

func confirmationKey(userID string) string {
	return fmt.Sprintf("confirmation:user:%s", userID)
}

func (s *redisConfirmationStore) Save(ctx context.Context, userID, code string, ttl time.Duration) error {
	hash, err := auth.HashCode(code)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}
	if err := s.client.Set(ctx, confirmationKey(userID), hash, ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

// Consume deletes the code only if the key still holds the hash that was checked.
// A Save or another Consume touching the key after the read aborts the delete.
func (s *redisConfirmationStore) Consume(ctx context.Context, userID, code string) (bool, error) {
	key := confirmationKey(userID)
	consumed := false

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		hash, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load confirmation code: %w", err)
		}

		// a wrong guess must not burn the stored code
		if auth.VerifyCode(hash, code) != nil {
			return nil
		}
		if s.beforeCommit != nil {
			s.beforeCommit()
		}

		var del *redis.IntCmd
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			del = pipe.Del(ctx, key)
			return nil
		}); err != nil {
			return err
		}
		consumed = del.Val() == 1
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		// the key changed under us: a newer code was saved or a racing exchange won
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume confirmation code: %w", err)
	}
	return consumed, nil
}
