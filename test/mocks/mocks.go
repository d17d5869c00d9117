package mocks

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/commercelab/microshop/internal/core/domain/product"
	"github.com/commercelab/microshop/internal/core/domain/user"
	"github.com/commercelab/microshop/internal/core/ports"
)

// FakeCache is an in-memory ports.Cache that enforces TTL expiry against an
// injectable clock, so tests can advance time without sleeping.
type FakeCache struct {
	mu      sync.Mutex
	Now     func() time.Time
	entries map[string]fakeEntry
}

type fakeEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewFakeCache() *FakeCache {
	return &FakeCache{Now: time.Now, entries: make(map[string]fakeEntry)}
}

func (f *FakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !f.Now().Before(e.expiresAt) {
		delete(f.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (f *FakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := fakeEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = f.Now().Add(ttl)
	}
	f.entries[key] = e
	return nil
}

func (f *FakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *FakeCache) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}

// FailingCache simulates an unreachable cache backend: every operation
// errors.
type FailingCache struct{}

var errCacheDown = errors.New("cache backend unreachable")

func (FailingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errCacheDown
}
func (FailingCache) Set(context.Context, string, []byte, time.Duration) error { return errCacheDown }
func (FailingCache) Delete(context.Context, string) error                     { return errCacheDown }

// ProductStoreMock wraps a ports.ProductStore behavior with call counters so
// tests can assert the store was, or was not, consulted.
type ProductStoreMock struct {
	GetFn     func(id int64) (product.Product, bool)
	AddFn     func(p product.Product) int64
	ListFn    func() []product.Product
	GetCalls  atomic.Int32
	ListCalls atomic.Int32
}

func (m *ProductStoreMock) Get(id int64) (product.Product, bool) {
	m.GetCalls.Add(1)
	if m.GetFn != nil {
		return m.GetFn(id)
	}
	return product.Product{}, false
}

func (m *ProductStoreMock) Add(p product.Product) int64 {
	if m.AddFn != nil {
		return m.AddFn(p)
	}
	return 0
}

func (m *ProductStoreMock) List() []product.Product {
	m.ListCalls.Add(1)
	if m.ListFn != nil {
		return m.ListFn()
	}
	return nil
}

// UserStoreMock mirrors ProductStoreMock for users.
type UserStoreMock struct {
	GetFn    func(id int64) (user.User, bool)
	AddFn    func(u user.User) int64
	ListFn   func() []user.User
	GetCalls atomic.Int32
}

func (m *UserStoreMock) Get(id int64) (user.User, bool) {
	m.GetCalls.Add(1)
	if m.GetFn != nil {
		return m.GetFn(id)
	}
	return user.User{}, false
}

func (m *UserStoreMock) Add(u user.User) int64 {
	if m.AddFn != nil {
		return m.AddFn(u)
	}
	return 0
}

func (m *UserStoreMock) List() []user.User {
	if m.ListFn != nil {
		return m.ListFn()
	}
	return nil
}

// PublishedMessage is one message captured by PublisherMock, with the exact
// bytes a consumer would dequeue.
type PublishedMessage struct {
	Queue string
	Body  []byte
}

// PublisherMock is a queue test double. It serializes events the same way
// the real publisher does and records the resulting bytes.
type PublisherMock struct {
	mu        sync.Mutex
	StateVal  ports.ConnectionState
	PublishFn func(ctx context.Context, queue string, event any) error
	Published []PublishedMessage
}

func (m *PublisherMock) Publish(ctx context.Context, queue string, event any) error {
	if m.PublishFn != nil {
		if err := m.PublishFn(ctx, queue, event); err != nil {
			return err
		}
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.Published = append(m.Published, PublishedMessage{Queue: queue, Body: body})
	m.mu.Unlock()
	return nil
}

func (m *PublisherMock) State() ports.ConnectionState { return m.StateVal }
func (m *PublisherMock) Ready() bool                  { return m.StateVal == ports.StateReady }
func (m *PublisherMock) Close() error                 { return nil }

// Messages returns a snapshot of everything published so far.
func (m *PublisherMock) Messages() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedMessage, len(m.Published))
	copy(out, m.Published)
	return out
}

var (
	_ ports.Cache          = (*FakeCache)(nil)
	_ ports.Cache          = FailingCache{}
	_ ports.ProductStore   = (*ProductStoreMock)(nil)
	_ ports.UserStore      = (*UserStoreMock)(nil)
	_ ports.EventPublisher = (*PublisherMock)(nil)
)
