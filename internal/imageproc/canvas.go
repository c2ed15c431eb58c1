package imageproc

import (
	"fmt"
	"image"
	"math"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

type CanvasConfig struct {
	MinSize float64
	MaxSize float64
}

func DefaultCanvasConfig() CanvasConfig {
	return CanvasConfig{MinSize: 600, MaxSize: 2000}
}

// Metadata is the sizing record every layout strategy works from
type Metadata struct {
	IsTallerThanWide   bool
	BaseDimension      float64 // shorter side of the source
	ScaleRatio         float64
	NormalizedBaseSize float64 // BaseDimension after scaling
	AspectFactor       float64 // height/width for tall sources, 1 otherwise
	OriginalWidth      int
	OriginalHeight     int
}

// Placement records one overlay drawn onto a canvas
type Placement struct {
	Key  string
	Rect image.Rectangle
}

type Canvas struct {
	Img        *image.NRGBA
	Meta       Metadata
	placements []Placement
}

// ScaleRatio clamps the base dimension into [min, max]
func ScaleRatio(base float64, cfg CanvasConfig) float64 {
	switch {
	case base < cfg.MinSize:
		return cfg.MinSize / base
	case base > cfg.MaxSize:
		return cfg.MaxSize / base
	default:
		return 1
	}
}

// Normalize draws src into a working canvas whose shorter side is clamped into the configured range
func Normalize(src image.Image, cfg CanvasConfig) (*Canvas, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", model.ErrSourceDecode)
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image", model.ErrSourceDecode)
	}

	meta := Metadata{
		IsTallerThanWide: w < h,
		OriginalWidth:    w,
		OriginalHeight:   h,
		AspectFactor:     1,
	}
	meta.BaseDimension = float64(h)
	if meta.IsTallerThanWide {
		meta.BaseDimension = float64(w)
		meta.AspectFactor = float64(h) / float64(w)
	}
	meta.ScaleRatio = ScaleRatio(meta.BaseDimension, cfg)
	meta.NormalizedBaseSize = meta.ScaleRatio * meta.BaseDimension

	var img *image.NRGBA
	if meta.ScaleRatio == 1 {
		img = imaging.Clone(src)
	} else {
		cw := max(1, int(math.Round(float64(w)*meta.ScaleRatio)))
		ch := max(1, int(math.Round(float64(h)*meta.ScaleRatio)))
		img = imaging.Resize(src, cw, ch, imaging.Lanczos)
	}

	return &Canvas{Img: img, Meta: meta}, nil
}

func (c *Canvas) W() float64 { return float64(c.Img.Bounds().Dx()) }
func (c *Canvas) H() float64 { return float64(c.Img.Bounds().Dy()) }

// Draw scales overlay into the rectangle (x, y, w, h) and blends it over the canvas.
// Parts outside the canvas are clipped.
func (c *Canvas) Draw(key string, overlay image.Image, x, y, w, h float64) {
	r := image.Rect(
		int(math.Round(x)),
		int(math.Round(y)),
		int(math.Round(x+w)),
		int(math.Round(y+h)),
	)
	if r.Empty() {
		return
	}
	xdraw.CatmullRom.Scale(c.Img, r, overlay, overlay.Bounds(), xdraw.Over, nil)
	c.placements = append(c.placements, Placement{Key: key, Rect: r})
}

func (c *Canvas) Placements() []Placement {
	return c.placements
}

// Release drops the pixel buffer once the canvas has been rasterized
func (c *Canvas) Release() {
	c.Img = nil
	c.placements = nil
}
