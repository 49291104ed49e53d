package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	appledger "github.com/stockops/backend/internal/application/ledger"
)

// totalEntry is a cached total with expiration
type totalEntry struct {
	total     int64
	expiresAt time.Time
}

// InMemoryStockCache implements StockCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryStockCache struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]totalEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryStockCache creates a new in-memory stock cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryStockCache(ttl time.Duration) *InMemoryStockCache {
	if ttl <= 0 {
		ttl = defaultStockTotalTTL
	}

	cache := &InMemoryStockCache{
		entries:  make(map[uuid.UUID]totalEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// GetProductTotal retrieves a cached product total.
// The second return value reports whether the total was present.
func (c *InMemoryStockCache) GetProductTotal(ctx context.Context, productID uuid.UUID) (int64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[productID]
	if !exists {
		return 0, false, nil
	}
	if time.Now().After(e.expiresAt) {
		return 0, false, nil // Expired, treat as a miss
	}

	return e.total, true, nil
}

// SetProductTotal stores the total for a product
func (c *InMemoryStockCache) SetProductTotal(ctx context.Context, productID uuid.UUID, total int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[productID] = totalEntry{
		total:     total,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// InvalidateProduct drops the cached total for a product
func (c *InMemoryStockCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, productID)
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryStockCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryStockCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryStockCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for productID, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, productID)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryStockCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryStockCache implements StockCache
var _ appledger.StockCache = (*InMemoryStockCache)(nil)
