package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Cache хранит сериализованные результаты расчетов
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key строит ключ кэша из имени инструмента и параметров.
// encoding/json сортирует ключи map, поэтому одинаковые параметры дают одинаковый ключ.
func Key(tool string, params map[string]interface{}) (string, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode params: %w", err)
	}
	return fmt.Sprintf("tool:%s:%016x", tool, xxhash.Sum64(raw)), nil
}

// DefaultMaxEntries предел числа записей MemoryCache по умолчанию
const DefaultMaxEntries = 10000

// sweepInterval как часто Set вычищает просроченные записи
const sweepInterval = time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache кэш в памяти процесса, используется без Redis и в тестах.
// Число записей ограничено maxEntries, просроченные записи удаляются при записи.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	maxEntries int
	nextSweep  time.Time
	now        func() time.Time
}

// NewMemoryCache создает кэш не более чем на maxEntries записей.
// При maxEntries <= 0 используется DefaultMaxEntries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	if entry.expired(m.now()) {
		delete(m.data, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	if _, exists := m.data[key]; !exists {
		if now.After(m.nextSweep) || len(m.data) >= m.maxEntries {
			m.sweep(now)
		}
		for len(m.data) >= m.maxEntries {
			m.evictSoonest()
		}
	}
	m.data[key] = entry
	return nil
}

// Len возвращает число хранимых записей, включая еще не вычищенные просроченные
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func (m *MemoryCache) sweep(now time.Time) {
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
		}
	}
	m.nextSweep = now.Add(sweepInterval)
}

// evictSoonest удаляет запись, которая истекает раньше всех; бессрочные идут последними
func (m *MemoryCache) evictSoonest() {
	var (
		victim  string
		soonest time.Time
		found   bool
	)
	for key, entry := range m.data {
		if !found || soonestFirst(entry.expiresAt, soonest) {
			victim, soonest, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.data, victim)
	}
}

func soonestFirst(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	default:
		return a.Before(b)
	}
}
