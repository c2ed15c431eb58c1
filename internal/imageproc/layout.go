package imageproc

import (
	"fmt"
	"image"

	"github.com/UnendingLoop/BrandMarker/internal/model"
)

// Overlays gives synchronous access to preloaded brand graphics
type Overlays interface {
	Get(key string) (image.Image, bool)
}

// Strategy draws a brand's overlays onto a normalized canvas
type Strategy interface {
	Apply(c *Canvas, variant model.WatermarkVariant, opts model.RenderOptions, ov Overlays)
}

var strategies = map[model.LayoutStrategy]Strategy{
	model.LayoutPhoneOverride: phoneOverride{},
	model.LayoutSideLogo:      sideLogo{},
	model.LayoutPhoneCorner:   phoneCorner{},
	model.LayoutTriptych:      triptych{},
}

func StrategyFor(l model.LayoutStrategy) (Strategy, error) {
	s, ok := strategies[l]
	if !ok {
		return nil, fmt.Errorf("%w: %d", model.ErrUnsupportedStrategy, l)
	}
	return s, nil
}

// rect computes the destination of an overlay from its height/width ratio
type rect func(ratio float64) (x, y, w, h float64)

// place draws the overlay stored under key. A missing overlay is skipped.
func place(c *Canvas, ov Overlays, key string, geom rect) {
	img, ok := ov.Get(key)
	if !ok {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	x, y, w, h := geom(float64(b.Dy()) / float64(b.Dx()))
	c.Draw(key, img, x, y, w, h)
}

// showsPhone reports whether the variant carries a phone overlay
func showsPhone(v model.WatermarkVariant) bool {
	return v.Value != "" && !v.OptOut
}
