package imageproc

import (
	"testing"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cfg := DefaultCanvasConfig()

	tests := []struct {
		name       string
		w, h       int
		tall       bool
		base       float64
		ratio      float64
		outW, outH int
		aspect     float64
	}{
		{"wide inside range", 1200, 800, false, 800, 1, 1200, 800, 1},
		{"tall inside range", 800, 1200, true, 800, 1, 800, 1200, 1.5},
		{"square uses height", 700, 700, false, 700, 1, 700, 700, 1},
		{"tall scale up", 300, 500, true, 300, 2, 600, 1000, 500.0 / 300},
		{"wide scale up", 450, 200, false, 200, 3, 1350, 600, 1},
		{"wide scale down", 4000, 3000, false, 3000, 2000.0 / 3000, 2667, 2000, 1},
		{"tall scale down", 2500, 5000, true, 2500, 0.8, 2000, 4000, 2},
		{"odd scale up rounds to min", 333, 700, true, 333, 600.0 / 333, 600, 1261, 700.0 / 333},
		{"near-min scale up rounds long side", 599, 1000, true, 599, 600.0 / 599, 600, 1002, 1000.0 / 599},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Normalize(solid(tt.w, tt.h, blue), cfg)
			require.NoError(t, err)

			require.Equal(t, tt.tall, c.Meta.IsTallerThanWide)
			require.Equal(t, tt.base, c.Meta.BaseDimension)
			require.InDelta(t, tt.ratio, c.Meta.ScaleRatio, 1e-9)
			require.InDelta(t, tt.ratio*tt.base, c.Meta.NormalizedBaseSize, 1e-9)
			require.InDelta(t, tt.aspect, c.Meta.AspectFactor, 1e-9)
			require.Equal(t, tt.w, c.Meta.OriginalWidth)
			require.Equal(t, tt.h, c.Meta.OriginalHeight)
			require.Equal(t, tt.outW, c.Img.Bounds().Dx())
			require.Equal(t, tt.outH, c.Img.Bounds().Dy())
		})
	}
}

func TestNormalize_BaseClampedToMin(t *testing.T) {
	cfg := DefaultCanvasConfig()

	for _, size := range [][2]int{{100, 150}, {599, 1000}, {1000, 150}, {251, 251}} {
		c, err := Normalize(solid(size[0], size[1], blue), cfg)
		require.NoError(t, err)

		base := c.Img.Bounds().Dy()
		if c.Meta.IsTallerThanWide {
			base = c.Img.Bounds().Dx()
		}
		require.InDelta(t, cfg.MinSize, float64(base), 0.5, "size %v", size)
		require.InDelta(t, cfg.MinSize, c.Meta.NormalizedBaseSize, 1e-9)
	}
}

func TestNormalize_InRangeIsExactCopy(t *testing.T) {
	src := solid(900, 640, blue)
	src.SetNRGBA(10, 10, red)

	c, err := Normalize(src, DefaultCanvasConfig())
	require.NoError(t, err)
	require.Equal(t, src.Pix, c.Img.Pix)
	require.Equal(t, src.Bounds(), c.Img.Bounds())
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize(nil, DefaultCanvasConfig())
	require.ErrorIs(t, err, model.ErrSourceDecode)

	_, err = Normalize(imaging.New(0, 0, blue), DefaultCanvasConfig())
	require.ErrorIs(t, err, model.ErrSourceDecode)
}

func TestScaleRatio(t *testing.T) {
	cfg := CanvasConfig{MinSize: 600, MaxSize: 2000}

	require.Equal(t, 2.0, ScaleRatio(300, cfg))
	require.Equal(t, 1.0, ScaleRatio(600, cfg))
	require.Equal(t, 1.0, ScaleRatio(2000, cfg))
	require.Equal(t, 0.5, ScaleRatio(4000, cfg))
}

func TestCanvas_DrawClipsAndRecords(t *testing.T) {
	c, err := Normalize(solid(600, 600, blue), DefaultCanvasConfig())
	require.NoError(t, err)

	c.Draw("k", solid(10, 10, red), 550, 550, 100, 100)
	require.Len(t, c.Placements(), 1)

	px := c.Img.NRGBAAt(590, 590)
	require.InDelta(t, float64(red.R), float64(px.R), 2)
	require.InDelta(t, float64(red.B), float64(px.B), 2)

	// zero-size destination is not drawn
	c.Draw("empty", solid(10, 10, red), 5, 5, 0.2, 0.2)
	require.Len(t, c.Placements(), 1)

	c.Release()
	require.Nil(t, c.Img)
	require.Empty(t, c.Placements())
}
