package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"inkserie-app/config"
	"inkserie-app/internal/log"
)

const payloadTTL = 60 * time.Second

// PayloadCache keeps assembled public serie payloads for a short TTL so the
// landing page does not rebuild the full nested document on every hit.
// A nil *PayloadCache is a no-op, so the API works without Redis in tests.
type PayloadCache struct {
	client *redis.Client
}

func NewPayloadCache() *PayloadCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.REDIS_ADDR,
		Password: config.REDIS_PASSWORD,
		DB:       config.REDIS_DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Logger.Warn().Err(err).Msg("redis unavailable, payload cache disabled")
		return nil
	}

	return &PayloadCache{client: client}
}

func serieKey(id string) string { return "serie:payload:" + id }

func (c *PayloadCache) Get(ctx context.Context, serieID string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, serieKey(serieID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Logger.Warn().Err(err).Str("serie_id", serieID).Msg("cache read failed")
		}
		return nil, false
	}
	return raw, true
}

func (c *PayloadCache) Set(ctx context.Context, serieID string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, serieKey(serieID), payload, payloadTTL).Err(); err != nil {
		log.Logger.Warn().Err(err).Str("serie_id", serieID).Msg("cache write failed")
	}
}

// Invalidate drops the cached payload after any editor write to the serie.
func (c *PayloadCache) Invalidate(ctx context.Context, serieID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, serieKey(serieID)).Err(); err != nil {
		log.Logger.Warn().Err(err).Str("serie_id", serieID).Msg("cache invalidate failed")
	}
}
