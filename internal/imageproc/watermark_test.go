package imageproc

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"testing"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func at247() model.BrandConfig {
	return model.BrandConfig{
		ID:     "AT247",
		Layout: model.LayoutPhoneOverride,
		Variants: []model.WatermarkVariant{
			{Value: "default"},
			{Value: "0919604444", Asset: "AT247/wm0919604444.png", Default: true},
		},
	}
}

func loadedResources() fakeResources {
	return fakeResources{
		loaded: true,
		overlayMap: overlayMap{
			model.AssetLogoCenter: solid(100, 50, red),
			model.AssetLogoCorner: solid(100, 50, green),
			"0919604444":          solid(200, 200, red),
		},
	}
}

func TestNewCompositor_UnsupportedStrategy(t *testing.T) {
	b := at247()
	b.Layout = 99

	_, err := NewCompositor(b, loadedResources(), DefaultCanvasConfig(), DefaultQuality)
	require.ErrorIs(t, err, model.ErrUnsupportedStrategy)
}

func TestCompositor_Render(t *testing.T) {
	comp, err := NewCompositor(at247(), loadedResources(), DefaultCanvasConfig(), DefaultQuality)
	require.NoError(t, err)

	tests := []struct {
		name       string
		src        []byte
		wantErr    error
		outW, outH int
	}{
		{name: "png in range", src: encoded(t, solid(1200, 800, blue), imaging.PNG), outW: 1200, outH: 800},
		{name: "jpeg scaled up", src: encoded(t, solid(300, 500, blue), imaging.JPEG), outW: 600, outH: 1000},
		{name: "gif in range", src: encoded(t, solid(700, 650, blue), imaging.GIF), outW: 700, outH: 650},
		{name: "jpeg scaled down", src: encoded(t, solid(3000, 2500, blue), imaging.JPEG), outW: 2400, outH: 2000},
		{name: "broken source", src: []byte("not-an-image"), wantErr: model.ErrSourceDecode},
		{name: "empty source", src: nil, wantErr: model.ErrSourceDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := comp.Render(context.Background(), tt.src, model.WatermarkVariant{Value: "default"}, model.RenderOptions{})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			img, format, err := image.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			require.Equal(t, "jpeg", format)
			require.Equal(t, tt.outW, img.Bounds().Dx())
			require.Equal(t, tt.outH, img.Bounds().Dy())
		})
	}
}

func TestCompositor_RenderIsDeterministic(t *testing.T) {
	comp, err := NewCompositor(at247(), loadedResources(), DefaultCanvasConfig(), DefaultQuality)
	require.NoError(t, err)

	src := encoded(t, solid(1200, 800, blue), imaging.PNG)
	for _, v := range at247().Variants {
		first, err := comp.Render(context.Background(), src, v, model.RenderOptions{})
		require.NoError(t, err)
		second, err := comp.Render(context.Background(), src, v, model.RenderOptions{})
		require.NoError(t, err)
		require.True(t, bytes.Equal(first, second), "variant %s", v.Value)
	}
}

func TestCompositor_VariantChangesOutput(t *testing.T) {
	comp, err := NewCompositor(at247(), loadedResources(), DefaultCanvasConfig(), DefaultQuality)
	require.NoError(t, err)

	src := encoded(t, solid(1200, 800, blue), imaging.PNG)
	a, err := comp.Render(context.Background(), src, model.WatermarkVariant{Value: "default"}, model.RenderOptions{})
	require.NoError(t, err)
	b, err := comp.Render(context.Background(), src, at247().Variants[1], model.RenderOptions{})
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, b))

	// the phone overlay covers the centre of the canvas
	img, err := imaging.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	r, _, _, _ := img.At(600, 400).RGBA()
	require.Greater(t, r>>8, uint32(150))
}

func TestCompositor_NotPreloaded(t *testing.T) {
	res := loadedResources()
	res.loaded = false

	comp, err := NewCompositor(at247(), res, DefaultCanvasConfig(), DefaultQuality)
	require.NoError(t, err)

	_, err = comp.Render(context.Background(), encoded(t, solid(10, 10, blue), imaging.PNG), model.WatermarkVariant{}, model.RenderOptions{})
	require.ErrorIs(t, err, model.ErrResourcesNotLoaded)
}

func TestCompositor_CancelledContext(t *testing.T) {
	comp, err := NewCompositor(at247(), loadedResources(), DefaultCanvasConfig(), DefaultQuality)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = comp.Render(ctx, encoded(t, solid(10, 10, blue), imaging.PNG), model.WatermarkVariant{}, model.RenderOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRasterize(t *testing.T) {
	out, err := Rasterize(solid(20, 10, blue), DefaultQuality)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	_, err = Rasterize(nil, DefaultQuality)
	require.ErrorIs(t, err, model.ErrRasterization)
}

func TestDecodeSource_WebP(t *testing.T) {
	// 1x1 lossless WEBP
	webp, err := base64.StdEncoding.DecodeString("UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA==")
	require.NoError(t, err)

	img, err := DecodeSource(webp)
	require.NoError(t, err)
	require.Equal(t, 1, img.Bounds().Dx())
	require.Equal(t, 1, img.Bounds().Dy())
}
