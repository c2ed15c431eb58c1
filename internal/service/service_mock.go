package service

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/wb-go/wbf/retry"
)

// MOCK REGISTRY

type mockRegistry struct {
	brands   map[model.BrandID]model.BrandConfig
	order    []model.BrandID
	fallback model.BrandID
}

func newMockRegistry(fallback model.BrandID, brands ...model.BrandConfig) *mockRegistry {
	r := &mockRegistry{brands: map[model.BrandID]model.BrandConfig{}, fallback: fallback}
	for _, b := range brands {
		r.brands[b.ID] = b
		r.order = append(r.order, b.ID)
	}
	return r
}

func (m *mockRegistry) Get(id model.BrandID) model.BrandConfig {
	if b, ok := m.brands[id]; ok {
		return b
	}
	return m.brands[m.fallback]
}

func (m *mockRegistry) Has(id model.BrandID) bool {
	_, ok := m.brands[id]
	return ok
}

func (m *mockRegistry) List() []model.BrandConfig {
	res := make([]model.BrandConfig, 0, len(m.order))
	for _, id := range m.order {
		res = append(res, m.brands[id])
	}
	return res
}

func (m *mockRegistry) Fallback() model.BrandID {
	return m.fallback
}

// MOCK ASSET SOURCE

type mockSource struct {
	mu    sync.Mutex
	calls []string
	getFn func(ctx context.Context, key string) (io.ReadCloser, string, error)
}

func (m *mockSource) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, key)
	m.mu.Unlock()
	return m.getFn(ctx, key)
}

// MOCK STORAGE

type mockStorage struct {
	putFn func(ctx context.Context, key string, size int64, ct string, r io.Reader) error
}

func (m *mockStorage) Put(ctx context.Context, key string, size int64, ct string, r io.Reader) error {
	return m.putFn(ctx, key, size, ct, r)
}

// MOCK PUBLISHER

type mockPublisher struct {
	sendFn func(ctx context.Context, s retry.Strategy, key []byte, v []byte) error
}

func (m *mockPublisher) SendWithRetry(ctx context.Context, s retry.Strategy, key []byte, v []byte) error {
	return m.sendFn(ctx, s, key, v)
}

// MOCK для тела объекта из хранилища
type fakeObject struct {
	*bytes.Reader
}

func (f *fakeObject) Close() error {
	return nil
}
