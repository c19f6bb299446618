package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound means no confirmation code is pending for the user: never
// issued, already redeemed, or expired past its TTL.
var ErrCodeNotFound = errors.New("confirmation code not found")

// ConfirmationCodeStore keeps the one-time signup credential. Only a hash of
// the code is stored; the TTL bounds its life and Delete makes redemption
// single-use.
type ConfirmationCodeStore interface {
	Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

type redisCodeStore struct {
	rdb *redis.Client
}

func NewConfirmationCodeStore(rdb *redis.Client) ConfirmationCodeStore {
	return &redisCodeStore{rdb: rdb}
}

func codeKey(userID string) string {
	return fmt.Sprintf("confirmation_code:%s", userID)
}

func (s *redisCodeStore) Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	return s.rdb.Set(ctx, codeKey(userID), codeHash, ttl).Err()
}

func (s *redisCodeStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.rdb.Get(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, codeKey(userID)).Err()
}
