package imageproc

import "github.com/UnendingLoop/BrandMarker/internal/model"

type phoneCorner struct{}

func (phoneCorner) Apply(c *Canvas, v model.WatermarkVariant, _ model.RenderOptions, ov Overlays) {
	W, H := c.W(), c.H()
	fs := c.Meta.NormalizedBaseSize
	tall := c.Meta.IsTallerThanWide

	k := 1.0
	if !tall {
		k = H / W
	}

	if showsPhone(v) {
		place(c, ov, v.Value, func(r float64) (float64, float64, float64, float64) {
			if tall {
				w := W * 0.38 * k
				return W - W*0.42*k, H - H*0.01*k - w*r, w, w * r
			}
			w := W * 0.35 * k
			return W - W*0.39*k, H - H*0.02 - w*r, w, w * r
		})
	}

	place(c, ov, model.AssetLogoCorner, func(r float64) (float64, float64, float64, float64) {
		w := W * 0.20 * k
		return 0.11 * w, w * r * 0.1, w, w * r
	})

	place(c, ov, model.AssetLogoCenter, func(r float64) (float64, float64, float64, float64) {
		return W/2 - fs/2, H - H/2.8, fs, r * fs
	})
}
