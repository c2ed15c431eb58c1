package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 20, B: 20, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func testBrand() model.BrandConfig {
	return model.BrandConfig{
		ID: "TEST",
		Assets: map[string]string{
			model.AssetLogoCenter: "test/center.png",
			model.AssetLogoCorner: "test/corner.png",
		},
		Variants: []model.WatermarkVariant{
			{Value: "0", Default: true},
			{Value: "111", Asset: "test/111.png"},
			{Value: "222", Asset: "test/222.png"},
		},
		Layout: model.LayoutPhoneCorner,
	}
}

func TestCache_Preload_OK(t *testing.T) {
	data := testPNG(t, 40, 20)
	src := &mockSource{
		getFn: func(ctx context.Context, key string) (io.ReadCloser, string, error) {
			return io.NopCloser(bytes.NewReader(data)), model.PNG, nil
		},
	}

	c := NewCache(testBrand(), src)
	require.False(t, c.Loaded())

	require.NoError(t, c.Preload(context.Background()))
	require.True(t, c.Loaded())
	require.Equal(t, 4, c.Len())
	require.EqualValues(t, 4, src.calls.Load())

	for _, key := range []string{model.AssetLogoCenter, model.AssetLogoCorner, "111", "222"} {
		img, ok := c.Get(key)
		require.True(t, ok, key)
		require.Equal(t, 40, img.Bounds().Dx())
	}

	_, ok := c.Get("0")
	require.False(t, ok)
}

func TestCache_Preload_Idempotent(t *testing.T) {
	data := testPNG(t, 10, 10)
	src := &mockSource{
		getFn: func(ctx context.Context, key string) (io.ReadCloser, string, error) {
			return io.NopCloser(bytes.NewReader(data)), model.PNG, nil
		},
	}

	c := NewCache(testBrand(), src)
	require.NoError(t, c.Preload(context.Background()))
	require.NoError(t, c.Preload(context.Background()))
	require.EqualValues(t, 4, src.calls.Load())
}

func TestCache_Preload_AggregateFailure(t *testing.T) {
	data := testPNG(t, 10, 10)

	tests := []struct {
		name  string
		getFn func(ctx context.Context, key string) (io.ReadCloser, string, error)
	}{
		{
			name: "missing asset",
			getFn: func(ctx context.Context, key string) (io.ReadCloser, string, error) {
				if key == "test/222.png" {
					return nil, "", errors.New("not found")
				}
				return io.NopCloser(bytes.NewReader(data)), model.PNG, nil
			},
		},
		{
			name: "broken asset",
			getFn: func(ctx context.Context, key string) (io.ReadCloser, string, error) {
				if key == "test/corner.png" {
					return io.NopCloser(bytes.NewReader([]byte("broken"))), model.PNG, nil
				}
				return io.NopCloser(bytes.NewReader(data)), model.PNG, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCache(testBrand(), &mockSource{getFn: tt.getFn})

			err := c.Preload(context.Background())
			require.ErrorIs(t, err, model.ErrResourceLoad)
			require.False(t, c.Loaded())
			require.Zero(t, c.Len())
		})
	}
}

func TestCache_Preload_RetryAfterFailure(t *testing.T) {
	data := testPNG(t, 10, 10)
	fail := true
	src := &mockSource{
		getFn: func(ctx context.Context, key string) (io.ReadCloser, string, error) {
			if fail && key == "test/111.png" {
				return nil, "", errors.New("temporary")
			}
			return io.NopCloser(bytes.NewReader(data)), model.PNG, nil
		},
	}

	c := NewCache(testBrand(), src)
	require.Error(t, c.Preload(context.Background()))

	fail = false
	require.NoError(t, c.Preload(context.Background()))
	require.True(t, c.Loaded())
}

func TestDirSource_Get(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "B"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "B", "logo.png"), testPNG(t, 8, 4), 0o644))

	src := NewDirSource(root)

	rc, ctype, err := src.Get(context.Background(), "B/logo.png")
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, model.PNG, ctype)

	img, err := imaging.Decode(rc)
	require.NoError(t, err)
	require.Equal(t, 8, img.Bounds().Dx())

	_, _, err = src.Get(context.Background(), "../etc/passwd")
	require.Error(t, err)

	_, _, err = src.Get(context.Background(), "B/missing.png")
	require.Error(t, err)
}
