package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/internal/model"
)

const (
	keyCarts = "carts:%s"

	// Abandoned carts expire rather than accumulate.
	cartTTL = 24 * time.Hour
)

type RedisCartStore struct {
	cache *redis.Client
}

func NewRedisCartStore(cache *redis.Client) *RedisCartStore {
	return &RedisCartStore{cache: cache}
}

func (s *RedisCartStore) Get(c context.Context, sessionId uuid.UUID) (model.Cart, error) {
	cacheKey := fmt.Sprintf(keyCarts, sessionId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisCartStore Get").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	jsonCart, err := s.cache.Get(c, cacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return model.Cart{}, nil
	}
	if err != nil {
		err = fmt.Errorf("failed finding cart in cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}

	cart := model.Cart{}
	err = json.Unmarshal([]byte(jsonCart), &cart)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling cart with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return model.Cart{}, err
	}
	return cart, nil
}

func (s *RedisCartStore) Set(c context.Context, sessionId uuid.UUID, cart model.Cart) error {
	cacheKey := fmt.Sprintf(keyCarts, sessionId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisCartStore Set").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	jsonCart, err := json.Marshal(cart)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	err = s.cache.Set(c, cacheKey, jsonCart, cartTTL).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting cart to cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

func (s *RedisCartStore) Delete(c context.Context, sessionId uuid.UUID) error {
	cacheKey := fmt.Sprintf(keyCarts, sessionId.String())
	err := s.cache.Del(c, cacheKey).Err()
	if err != nil {
		return fmt.Errorf("failed deleting cart from cache with error=%w", err)
	}
	return nil
}
