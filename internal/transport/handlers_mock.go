package transport

import (
	"context"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/gin-gonic/gin"
)

type mockWatermarkService struct {
	brandsFn        func() []model.BrandConfig
	activeBrandFn   func() model.BrandConfig
	activateBrandFn func(ctx context.Context, id model.BrandID) (model.BrandConfig, error)
	processFn       func(ctx context.Context, uploads []model.SourceImage, variant string, opts model.RenderOptions) (*model.ProcessReport, error)
	reapplyFn       func(ctx context.Context, ids []string, variant string, opts model.RenderOptions) ([]model.BatchResult, error)
	deleteFn        func(ctx context.Context, id string) error
	selectFn        func(ctx context.Context, id string, selected bool) error
	selectAllFn     func(ctx context.Context, selected bool) int
	listFn          func(ctx context.Context) []model.ProcessedImage
	displayFn       func(ctx context.Context, handle string) ([]byte, string, error)
	archiveFn       func(ctx context.Context) (string, []byte, error)
	exportFn        func(ctx context.Context) (model.ExportReport, error)
}

func (m *mockWatermarkService) Brands() []model.BrandConfig {
	return m.brandsFn()
}

func (m *mockWatermarkService) ActiveBrand() model.BrandConfig {
	return m.activeBrandFn()
}

func (m *mockWatermarkService) ActivateBrand(ctx context.Context, id model.BrandID) (model.BrandConfig, error) {
	return m.activateBrandFn(ctx, id)
}

func (m *mockWatermarkService) Process(ctx context.Context, uploads []model.SourceImage, variant string, opts model.RenderOptions) (*model.ProcessReport, error) {
	return m.processFn(ctx, uploads, variant, opts)
}

func (m *mockWatermarkService) Reapply(ctx context.Context, ids []string, variant string, opts model.RenderOptions) ([]model.BatchResult, error) {
	return m.reapplyFn(ctx, ids, variant, opts)
}

func (m *mockWatermarkService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockWatermarkService) Select(ctx context.Context, id string, selected bool) error {
	return m.selectFn(ctx, id, selected)
}

func (m *mockWatermarkService) SelectAll(ctx context.Context, selected bool) int {
	return m.selectAllFn(ctx, selected)
}

func (m *mockWatermarkService) List(ctx context.Context) []model.ProcessedImage {
	return m.listFn(ctx)
}

func (m *mockWatermarkService) Display(ctx context.Context, handle string) ([]byte, string, error) {
	return m.displayFn(ctx, handle)
}

func (m *mockWatermarkService) Archive(ctx context.Context) (string, []byte, error) {
	return m.archiveFn(ctx)
}

func (m *mockWatermarkService) Export(ctx context.Context) (model.ExportReport, error) {
	return m.exportFn(ctx)
}

func init() {
	gin.SetMode(gin.TestMode)
}
