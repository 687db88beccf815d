package visitors

import (
	"context"
	"strconv"
	"sync"
)

// memoryKV is the in-process fallback backend. One mutex covers counters and
// lists.
type memoryKV struct {
	mu       sync.Mutex
	counters map[string]int64
	lists    map[string][]string
}

// NewMemoryKV returns an empty in-process KV.
func NewMemoryKV() KV {
	return &memoryKV{
		counters: make(map[string]int64),
		lists:    make(map[string][]string),
	}
}

func (m *memoryKV) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
	return m.counters[key], nil
}

func (m *memoryKV) LPush(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append([]string{value}, m.lists[key]...)
	return nil
}

func (m *memoryKV) LTrim(ctx context.Context, key string, start, stop int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[key]
	if start < 0 {
		start = 0
	}
	if stop >= int64(len(list)) {
		stop = int64(len(list)) - 1
	}
	if start > stop || len(list) == 0 {
		m.lists[key] = nil
		return nil
	}
	m.lists[key] = list[start : stop+1]
	return nil
}

func (m *memoryKV) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[key]
	if start < 0 {
		start = 0
	}
	if stop >= int64(len(list)) {
		stop = int64(len(list)) - 1
	}
	if start > stop || len(list) == 0 {
		return nil, nil
	}
	out := make([]string, stop-start+1)
	copy(out, list[start:stop+1])
	return out, nil
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if count, ok := m.counters[key]; ok {
		return strconv.FormatInt(count, 10), nil
	}
	return "", nil
}

func (m *memoryKV) Ping(ctx context.Context) error { return nil }
