package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

type overlayMap map[string]image.Image

func (m overlayMap) Get(key string) (image.Image, bool) {
	img, ok := m[key]
	return img, ok
}

type fakeResources struct {
	overlayMap
	loaded bool
}

func (f fakeResources) Loaded() bool { return f.loaded }

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encoded(t *testing.T, img image.Image, format imaging.Format) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func keys(c *Canvas) []string {
	res := make([]string, 0, len(c.Placements()))
	for _, p := range c.Placements() {
		res = append(res, p.Key)
	}
	return res
}

func rectOf(t *testing.T, c *Canvas, key string) image.Rectangle {
	t.Helper()

	for _, p := range c.Placements() {
		if p.Key == key {
			return p.Rect
		}
	}
	require.Failf(t, "overlay not drawn", "key %q", key)
	return image.Rectangle{}
}

var (
	blue  = color.NRGBA{R: 20, G: 20, B: 200, A: 255}
	red   = color.NRGBA{R: 220, G: 10, B: 10, A: 255}
	green = color.NRGBA{R: 10, G: 200, B: 10, A: 255}
)
