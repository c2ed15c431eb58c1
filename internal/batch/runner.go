// Package batch runs the compositor over an ordered collection of images
package batch

import (
	"context"
	"fmt"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/wb-go/wbf/zlog"
)

// Renderer - контракт компоновщика для одного изображения
type Renderer interface {
	Render(ctx context.Context, src []byte, variant model.WatermarkVariant, opts model.RenderOptions) ([]byte, error)
}

type Runner struct {
	renderer Renderer
}

func NewRunner(r Renderer) *Runner {
	return &Runner{renderer: r}
}

// Run processes images one by one in input order. A failed item is recorded with its error and
// never stops the batch; progress fires once per item with (i+1)/total. After ctx is cancelled
// the remaining items are recorded as failed.
func (r *Runner) Run(ctx context.Context, images []model.SourceImage, variant model.WatermarkVariant, opts model.RenderOptions, onProgress model.ProgressFunc) []model.BatchResult {
	total := len(images)
	results := make([]model.BatchResult, 0, total)

	for i, img := range images {
		res := model.BatchResult{Original: img}

		blob, err := r.renderOne(ctx, img, variant, opts)
		if err != nil {
			zlog.Logger.Error().
				Err(err).
				Str("file", img.Filename).
				Int("index", i).
				Msg("Failed to process image")
			res.Err = err.Error()
		} else {
			res.Processed = &model.Rendered{
				Blob:     blob,
				Filename: model.OutputFilename(img.Filename),
				Size:     len(blob),
			}
		}
		results = append(results, res)

		if onProgress != nil {
			onProgress(float64(i+1)/float64(total), i+1, total)
		}
	}

	return results
}

func (r *Runner) renderOne(ctx context.Context, img model.SourceImage, variant model.WatermarkVariant, opts model.RenderOptions) (blob []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("render panicked: %v", p)
		}
	}()

	return r.renderer.Render(ctx, img.Data, variant, opts)
}
