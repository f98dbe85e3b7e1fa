package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oysloe/oysloe-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

// fixedCalendar pins "now" to the given instant
func fixedCalendar(now time.Time, loc *time.Location) *Calendar {
	c := NewCalendar(loc)
	c.now = func() time.Time { return now }
	return c
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
	gets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failGet {
		return false, errors.New("cache unavailable")
	}
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{revoked: map[string]time.Duration{}}
}

func (m *memoryBlacklist) BlacklistToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = expiry
	return nil
}

func (m *memoryBlacklist) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

type countingMetrics struct {
	mu            sync.Mutex
	pageviews     int
	submissions   int
	statusChanges map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{statusChanges: map[string]int{}}
}

func (m *countingMetrics) IncPageview() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageviews++
}

func (m *countingMetrics) IncSubmission() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions++
}

func (m *countingMetrics) IncStatusChange(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusChanges[status]++
}
