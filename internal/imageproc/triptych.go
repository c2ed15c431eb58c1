package imageproc

import "github.com/UnendingLoop/BrandMarker/internal/model"

type triptych struct{}

func (triptych) Apply(c *Canvas, v model.WatermarkVariant, _ model.RenderOptions, ov Overlays) {
	if v.OptOut {
		return
	}

	W, H := c.W(), c.H()
	fs := c.Meta.NormalizedBaseSize

	place(c, ov, model.AssetCenter, func(r float64) (float64, float64, float64, float64) {
		if W/H >= 2 {
			return W/2 - fs, H / 2, fs * 2, r * fs * 2
		}
		return 0, H / 2, W, r * W
	})

	side := fs * 0.33 * c.Meta.AspectFactor
	place(c, ov, model.AssetLogoBottom, func(r float64) (float64, float64, float64, float64) {
		return 0, H - side*r, side, side * r
	})

	// number sits 1.5x higher than the bottom logo
	place(c, ov, model.AssetNumber, func(r float64) (float64, float64, float64, float64) {
		return W - side, H - side*r*1.5, side, side * r
	})
}
