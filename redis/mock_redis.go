package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockCommander is a map backed Commander for tests. Setting one of the *Err fields
// makes the matching command fail with it, simulating a transport failure.
type MockCommander struct {
	SetErr  error
	GetErr  error
	PingErr error

	mux    sync.Mutex
	lookup map[string]string
	// Calls counts commands issued, keyed by command name.
	Calls map[string]int
}

// Returns a new Redis mock client.
func NewMockClient() *MockCommander {
	return &MockCommander{
		lookup: make(map[string]string),
		Calls:  make(map[string]int),
	}
}

func (m *MockCommander) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["SET"]++
	if m.SetErr != nil {
		return redis.NewStatusResult("", m.SetErr)
	}
	switch v := value.(type) {
	case string:
		m.lookup[key] = v
	case []byte:
		m.lookup[key] = string(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *MockCommander) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["GET"]++
	if m.GetErr != nil {
		return redis.NewStringResult("", m.GetErr)
	}
	v, ok := m.lookup[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *MockCommander) Ping(ctx context.Context) *redis.StatusCmd {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["PING"]++
	if m.PingErr != nil {
		return redis.NewStatusResult("", m.PingErr)
	}
	return redis.NewStatusResult("PONG", nil)
}

// Put stores a raw value bypassing Set, e.g. to seed binary payloads.
func (m *MockCommander) Put(key string, value string) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.lookup[key] = value
}
