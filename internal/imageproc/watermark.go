// Package imageproc provides the watermark compositing engine: canvas normalization,
// per-brand layout strategies and rasterization.
package imageproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
	_ "golang.org/x/image/webp" // регистрируем декодер WEBP для image.Decode
)

const DefaultQuality = 90

// Resources are the decoded overlays of a brand; they must be preloaded before rendering
type Resources interface {
	Overlays
	Loaded() bool
}

type Compositor struct {
	brand    model.BrandConfig
	strategy Strategy
	res      Resources
	cfg      CanvasConfig
	quality  int
}

func NewCompositor(brand model.BrandConfig, res Resources, cfg CanvasConfig, quality int) (*Compositor, error) {
	s, err := StrategyFor(brand.Layout)
	if err != nil {
		return nil, fmt.Errorf("brand %s: %w", brand.ID, err)
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Compositor{brand: brand, strategy: s, res: res, cfg: cfg, quality: quality}, nil
}

// Render decodes src, normalizes it, draws the brand overlays for the variant and returns a JPEG.
// Same input and same cached assets always give the same bytes.
func (c *Compositor) Render(ctx context.Context, src []byte, variant model.WatermarkVariant, opts model.RenderOptions) ([]byte, error) {
	if !c.res.Loaded() {
		return nil, fmt.Errorf("brand %s: %w", c.brand.ID, model.ErrResourcesNotLoaded)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := DecodeSource(src)
	if err != nil {
		return nil, err
	}

	canvas, err := Normalize(img, c.cfg)
	if err != nil {
		return nil, err
	}
	defer canvas.Release()

	c.strategy.Apply(canvas, variant, opts, c.res)

	zlog.Logger.Debug().
		Str("brand", string(c.brand.ID)).
		Str("variant", variant.Value).
		Int("width", canvas.Img.Bounds().Dx()).
		Int("height", canvas.Img.Bounds().Dy()).
		Float64("scale_ratio", canvas.Meta.ScaleRatio).
		Int("overlays", len(canvas.Placements())).
		Msg("Watermark layout applied")

	return Rasterize(canvas.Img, c.quality)
}

// DecodeSource decodes JPEG, PNG, GIF or WEBP bytes honouring EXIF orientation
func DecodeSource(src []byte) (image.Image, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty input", model.ErrSourceDecode)
	}
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrSourceDecode, err)
	}
	return img, nil
}

// Rasterize encodes the canvas as JPEG with the given quality
func Rasterize(img image.Image, quality int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil canvas", model.ErrRasterization)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Join(model.ErrRasterization, err)
	}
	if buf.Len() == 0 {
		return nil, model.ErrRasterization
	}
	return buf.Bytes(), nil
}
