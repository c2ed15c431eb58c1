package assets

import (
	"context"
	"io"
	"sync/atomic"
)

type mockSource struct {
	getFn func(ctx context.Context, key string) (io.ReadCloser, string, error)
	calls atomic.Int32
}

func (m *mockSource) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	m.calls.Add(1)
	return m.getFn(ctx, key)
}
