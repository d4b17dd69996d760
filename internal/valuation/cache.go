package valuation

import (
	"container/list"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoreau/claimroute/internal/service"
)

// CachingValuer wraps a Valuer with a bounded LRU cache. Valuation lookups are
// deterministic for a given vehicle, so entries never expire; capacity bounds
// memory instead.
type CachingValuer struct {
	inner    service.Valuer
	entries  map[string]*list.Element
	order    *list.List
	capacity int
	mu       sync.Mutex
}

type cacheEntry struct {
	key   string
	value service.Valuation
}

// NewCachingValuer creates an LRU-cached valuer with the given capacity.
func NewCachingValuer(inner service.Valuer, capacity int) *CachingValuer {
	if capacity <= 0 {
		capacity = 128
	}
	return &CachingValuer{
		inner:    inner,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		capacity: capacity,
	}
}

// VehicleValue returns the cached value when present, otherwise delegates to
// the wrapped valuer and caches the result.
func (c *CachingValuer) VehicleValue(ctx context.Context, vin string, year int, vehicleMake, vehicleModel string) (service.Valuation, error) {
	key := cacheKey(vin, year, vehicleMake, vehicleModel)

	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		val := elem.Value.(*cacheEntry).value
		c.mu.Unlock()
		return val, nil
	}
	c.mu.Unlock()

	val, err := c.inner.VehicleValue(ctx, vin, year, vehicleMake, vehicleModel)
	if err != nil {
		return service.Valuation{}, err
	}

	c.put(key, val)
	return val, nil
}

func (c *CachingValuer) put(key string, val service.Valuation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).value = val
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, value: val})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Clear empties the cache.
func (c *CachingValuer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Size returns the number of cached entries.
func (c *CachingValuer) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func cacheKey(vin string, year int, vehicleMake, vehicleModel string) string {
	vin = strings.TrimSpace(vin)
	if vin != "" {
		return vin
	}
	return fmt.Sprintf("%d_%s_%s", year, strings.TrimSpace(vehicleMake), strings.TrimSpace(vehicleModel))
}
