package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oysloe/oysloe-backend/config"
	"github.com/oysloe/oysloe-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	blacklistPrefix = "blacklist"
	revokedValue    = "revoked"
)

// PricingActiveKey caches the public pricing listing.
const PricingActiveKey = "pricing:active"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the few redis operations the service needs.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Init connects to Redis and verifies the connection
func Init(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})

	raw := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := raw.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		_ = raw.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return &Client{store: raw, raw: raw}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	logger.Info("Closing Redis connection")
	return c.raw.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}

// GetJSON loads key into dest. found is false on a cache miss.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.store.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.store.Set(ctx, key, payload, ttl).Err()
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.store.Del(ctx, keys...).Err()
}

func blacklistKey(tokenID string) string {
	return fmt.Sprintf("%s:%s", blacklistPrefix, tokenID)
}

// BlacklistToken marks a token id as revoked until it would have expired anyway
func (c *Client) BlacklistToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	if expiry <= 0 {
		return nil
	}

	if err := c.store.Set(ctx, blacklistKey(tokenID), revokedValue, expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err)
		return err
	}

	logger.Debug("Token blacklisted", map[string]interface{}{
		"expiry": expiry.String(),
	})
	return nil
}

// IsTokenBlacklisted checks if a token id is in the blacklist
func (c *Client) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	val, err := c.store.Get(ctx, blacklistKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err)
		return false, err
	}
	return val == revokedValue, nil
}
