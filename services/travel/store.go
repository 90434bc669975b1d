package travel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"glowslots/models"
)

// Store is the advisory estimate cache. Implementations may drop entries at any
// time; concurrent writes to one key are last-write-wins.
type Store interface {
	Get(ctx context.Context, key string) (models.TravelEstimate, bool, error)
	Set(ctx context.Context, key string, est models.TravelEstimate, ttl time.Duration) error
}

// CacheKey identifies an estimate by both endpoints and the vendor.
func CacheKey(origin, destination models.GeoPoint, vendorID string) string {
	return fmt.Sprintf("travel:%.5f,%.5f:%.5f,%.5f:%s",
		origin.Lat, origin.Lng, destination.Lat, destination.Lng, vendorID)
}

type memoryEntry struct {
	est       models.TravelEstimate
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Expired entries are evicted on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string) (models.TravelEstimate, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return models.TravelEstimate{}, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, still := m.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return models.TravelEstimate{}, false, nil
	}
	return e.est, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, est models.TravelEstimate, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{est: est, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
