package imageproc

import "github.com/UnendingLoop/BrandMarker/internal/model"

// phoneOverride draws a centre logo and a bottom-right logo, unless the variant has its own
// graphic: that one is drawn alone over a centred square of the normalized base size.
type phoneOverride struct{}

func (phoneOverride) Apply(c *Canvas, v model.WatermarkVariant, _ model.RenderOptions, ov Overlays) {
	W, H := c.W(), c.H()
	fs := c.Meta.NormalizedBaseSize

	if v.Asset != "" {
		place(c, ov, v.Value, func(float64) (float64, float64, float64, float64) {
			return (W - fs) / 2, (H - fs) / 2, fs, fs
		})
		return
	}

	place(c, ov, model.AssetLogoCenter, func(r float64) (float64, float64, float64, float64) {
		return W*0.37 - fs*0.20, H*0.4 - r*fs*0.19, fs * 0.38, r * fs * 0.38
	})

	side := fs * c.Meta.AspectFactor * 0.13
	place(c, ov, model.AssetLogoCorner, func(r float64) (float64, float64, float64, float64) {
		return W - side, H - side*r, side, side * r
	})
}
