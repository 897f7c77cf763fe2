package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/iwvelando/moneywiki/pkg/constants"
)

type memoryEntry struct {
	key     string
	value   []byte
	expires time.Time
}

// Memory is an in-process LRU cache bounded to a maximum number of entries.
type Memory struct {
	mu         sync.Mutex
	maxEntries int
	order      *list.List
	entries    map[string]*list.Element
	now        func() time.Time
}

// NewMemory creates a cache holding at most maxEntries values. Non-positive
// sizes use the default.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheEntries
	}
	return &Memory{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	entry := el.Value.(*memoryEntry)
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		m.remove(el)
		return nil, ErrMiss
	}
	m.order.MoveToFront(el)
	return append([]byte(nil), entry.value...), nil
}

// Set stores a copy of value, evicting the least recently used entry when
// the cache is full.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := &memoryEntry{key: key, value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}

	if el, ok := m.entries[key]; ok {
		el.Value = entry
		m.order.MoveToFront(el)
		return nil
	}
	m.entries[key] = m.order.PushFront(entry)
	for m.order.Len() > m.maxEntries {
		m.remove(m.order.Back())
	}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *Memory) remove(el *list.Element) {
	m.order.Remove(el)
	delete(m.entries, el.Value.(*memoryEntry).key)
}
