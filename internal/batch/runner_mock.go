package batch

import (
	"context"

	"github.com/UnendingLoop/BrandMarker/internal/model"
)

type mockRenderer struct {
	renderFn func(ctx context.Context, src []byte, v model.WatermarkVariant, opts model.RenderOptions) ([]byte, error)
}

func (m *mockRenderer) Render(ctx context.Context, src []byte, v model.WatermarkVariant, opts model.RenderOptions) ([]byte, error) {
	return m.renderFn(ctx, src, v, opts)
}
