package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"campusspot/internal/config"
	"campusspot/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "campusspot:suggest:"

// SuggestionCache stores remote suggestions by query.
// Failures are swallowed; a broken cache behaves like an empty one.
type SuggestionCache interface {
	Get(ctx context.Context, key string) (*model.AIAnalysisResult, bool)
	Set(ctx context.Context, key string, result *model.AIAnalysisResult)
}

// CacheKey derives the cache key of a query. Case and whitespace are ignored.
func CacheKey(query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// RedisCache is a SuggestionCache backed by Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache connects a cache from configuration
func NewRedisCache(cfg *config.RedisConfig, logger *zap.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisCacheWithClient(client, time.Duration(cfg.TTL)*time.Second, logger)
}

// NewRedisCacheWithClient wraps an existing client
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Ping checks connectivity
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get returns a cached suggestion
func (c *RedisCache) Get(ctx context.Context, key string) (*model.AIAnalysisResult, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("suggestion cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	result, err := decodeSuggestion([]byte(data))
	if err != nil {
		c.logger.Warn("suggestion cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return result, true
}

// Set stores a suggestion with the configured TTL
func (c *RedisCache) Set(ctx context.Context, key string, result *model.AIAnalysisResult) {
	data, err := encodeSuggestion(result)
	if err != nil {
		c.logger.Warn("suggestion cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("suggestion cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// encodeSuggestion serializes a cache entry. A nil amenity patch is kept
// apart from an empty one.
func encodeSuggestion(result *model.AIAnalysisResult) ([]byte, error) {
	return json.Marshal(result)
}

func decodeSuggestion(data []byte) (*model.AIAnalysisResult, error) {
	var result model.AIAnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

var _ SuggestionCache = (*RedisCache)(nil)
