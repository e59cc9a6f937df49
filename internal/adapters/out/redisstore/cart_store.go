package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"roboshop/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

// DefaultCartTTL applies when the configured TTL is not positive.
const DefaultCartTTL = 7 * 24 * time.Hour

// CartStore keeps each cart as a hash of product id -> quantity under
// cart:{userID}. Every write pushes the expiry out by the TTL.
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &CartStore{client: client, ttl: ttl}
}

func cartKey(userID kernel.UUID) string {
	return "cart:" + userID.String()
}

func (s *CartStore) Get(ctx context.Context, userID kernel.UUID) (map[kernel.UUID]int, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	cart := make(map[kernel.UUID]int, len(fields))
	for field, value := range fields {
		productID, err := kernel.UUIDFromString(field)
		if err != nil {
			return nil, fmt.Errorf("cart %s: %w", userID, err)
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("cart %s: quantity of %s: %w", userID, field, err)
		}
		if qty > 0 {
			cart[productID] = qty
		}
	}
	return cart, nil
}

func (s *CartStore) SetItem(ctx context.Context, userID, productID kernel.UUID, qty int) error {
	key := cartKey(userID)
	if qty <= 0 {
		return s.client.HDel(ctx, key, productID.String()).Err()
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, productID.String(), qty)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

func (s *CartStore) Clear(ctx context.Context, userID kernel.UUID) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}
