package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	kafkago "github.com/segmentio/kafka-go"
)

type mockStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	gets    int
}

func newMockStorage(objects map[string][]byte) *mockStorage {
	if objects == nil {
		objects = map[string][]byte{}
	}
	return &mockStorage{objects: objects}
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++

	data, ok := m.objects[key]
	if !ok {
		return nil, "", errors.New("the specified key does not exist")
	}
	return io.NopCloser(bytes.NewReader(data)), model.PNG, nil
}

func (m *mockStorage) Put(ctx context.Context, key string, size int64, ct string, r io.Reader) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *mockStorage) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *mockStorage) object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}

//----------------------------------

type mockBrands struct {
	brand model.BrandConfig
}

func (m mockBrands) Get(id model.BrandID) model.BrandConfig {
	return m.brand
}

//----------------------------------

type mockCommitter struct {
	mu        sync.Mutex
	committed []string
}

func (m *mockCommitter) Commit(ctx context.Context, msg kafkago.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = append(m.committed, string(msg.Key))
	return nil
}

func (m *mockCommitter) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.committed...)
}
