package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appledger "github.com/stockops/backend/internal/application/ledger"
)

const defaultStockTotalTTL = 5 * time.Minute

// RedisStockCache caches denormalized product stock totals in Redis.
// Totals are invalidated after every committed mutation, the TTL only
// bounds staleness when an invalidation is lost.
type RedisStockCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStockCacheOption is a functional option for configuring the cache
type RedisStockCacheOption func(*RedisStockCache)

// WithStockTotalTTL sets the expiry for cached totals
func WithStockTotalTTL(ttl time.Duration) RedisStockCacheOption {
	return func(c *RedisStockCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisStockCacheOption {
	return func(c *RedisStockCache) {
		c.logger = logger
	}
}

// NewRedisStockCache creates a new Redis-backed stock cache
func NewRedisStockCache(cfg RedisConfig, opts ...RedisStockCacheOption) (*RedisStockCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisStockCache{
		client:     client,
		ownsClient: true,
		ttl:        defaultStockTotalTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisStockCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisStockCacheWithClient(client *redis.Client, opts ...RedisStockCacheOption) *RedisStockCache {
	cache := &RedisStockCache{
		client:     client,
		ownsClient: false,
		ttl:        defaultStockTotalTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// productTotalKey generates the cache key for a product total
func (c *RedisStockCache) productTotalKey(productID uuid.UUID) string {
	return fmt.Sprintf("stock:product:%s:total", productID.String())
}

// GetProductTotal retrieves a cached product total.
// The second return value reports whether the total was present.
func (c *RedisStockCache) GetProductTotal(ctx context.Context, productID uuid.UUID) (int64, bool, error) {
	key := c.productTotalKey(productID)

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for product total", zap.String("product_id", productID.String()))
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get product total from cache: %w", err)
	}

	total, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		// Drop the corrupted entry and report a miss
		_ = c.client.Del(ctx, key)
		c.logger.Warn("Corrupted product total in cache",
			zap.String("product_id", productID.String()),
			zap.String("value", data))
		return 0, false, nil
	}

	return total, true, nil
}

// SetProductTotal stores the total for a product with the configured TTL
func (c *RedisStockCache) SetProductTotal(ctx context.Context, productID uuid.UUID, total int64) error {
	key := c.productTotalKey(productID)

	if err := c.client.Set(ctx, key, strconv.FormatInt(total, 10), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set product total in cache: %w", err)
	}
	return nil
}

// InvalidateProduct drops the cached total for a product
func (c *RedisStockCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	key := c.productTotalKey(productID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product total: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisStockCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisStockCache implements StockCache
var _ appledger.StockCache = (*RedisStockCache)(nil)
