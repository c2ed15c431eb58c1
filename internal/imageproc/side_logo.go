package imageproc

import "github.com/UnendingLoop/BrandMarker/internal/model"

type sideLogo struct{}

func (sideLogo) Apply(c *Canvas, v model.WatermarkVariant, opts model.RenderOptions, ov Overlays) {
	W, H := c.W(), c.H()
	fs := c.Meta.NormalizedBaseSize
	tall := c.Meta.IsTallerThanWide

	if opts.SecondaryLogo() {
		k := 1.0
		if !tall {
			k = H / W
		}
		place(c, ov, model.AssetLogoCorner, func(r float64) (float64, float64, float64, float64) {
			w := W * 0.19 * k
			return 0.11 * w, w * r * 0.1, w, w * r
		})
	}

	place(c, ov, model.AssetLogoCenter, func(r float64) (float64, float64, float64, float64) {
		return W/2 - fs/2, H - H/2.27, fs, r * fs
	})

	if !showsPhone(v) {
		return
	}
	place(c, ov, v.Value, func(r float64) (float64, float64, float64, float64) {
		if tall {
			return W - W*0.35, H - W*0.37*r, W * 0.33, W * 0.33 * r
		}
		k := H / W
		return W - W*0.36*k, H - W*0.38*r*k, W * 0.35 * k, W * 0.35 * r * k
	})
}
