// Package assets provides the per-brand cache of decoded watermark graphics
package assets

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"sort"
	"sync"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/sync/errgroup"
)

// Source - контракт для чтения ассетов (локальная папка или объектное хранилище)
type Source interface {
	Get(ctx context.Context, key string) (output io.ReadCloser, ctype string, err error)
}

// Cache holds decoded assets of a single brand. A brand switch builds a new Cache.
type Cache struct {
	brand  model.BrandConfig
	source Source

	loadMu sync.Mutex // serializes Preload calls

	mu     sync.RWMutex
	images map[string]image.Image
	loaded bool
}

func NewCache(brand model.BrandConfig, src Source) *Cache {
	return &Cache{
		brand:  brand,
		source: src,
		images: map[string]image.Image{},
	}
}

type assetRef struct {
	key string
	ref string
}

// refs lists brand assets by asset name and variant graphics by variant value
func refs(b model.BrandConfig) []assetRef {
	res := make([]assetRef, 0, len(b.Assets)+len(b.Variants))

	keys := make([]string, 0, len(b.Assets))
	for k := range b.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		res = append(res, assetRef{key: k, ref: b.Assets[k]})
	}

	for _, v := range b.Variants {
		if v.Asset != "" {
			res = append(res, assetRef{key: v.Value, ref: v.Asset})
		}
	}
	return res
}

// Preload decodes every asset of the brand concurrently. Any failure fails the whole preload
// and leaves the cache empty. Calling it on a loaded cache is a no-op.
func (c *Cache) Preload(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	if c.Loaded() {
		return nil
	}

	list := refs(c.brand)
	staged := make(map[string]image.Image, len(list))
	var stagedMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range list {
		g.Go(func() error {
			img, err := c.load(gctx, a.ref)
			if err != nil {
				return fmt.Errorf("asset %q (%s): %w", a.key, a.ref, err)
			}
			stagedMu.Lock()
			staged[a.key] = img
			stagedMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zlog.Logger.Error().Err(err).Str("brand", string(c.brand.ID)).Msg("Failed to preload brand assets")
		return fmt.Errorf("%w: brand %s: %v", model.ErrResourceLoad, c.brand.ID, err)
	}

	c.mu.Lock()
	c.images = staged
	c.loaded = true
	c.mu.Unlock()

	zlog.Logger.Info().
		Str("brand", string(c.brand.ID)).
		Int("assets", len(staged)).
		Msg("Brand assets preloaded")
	return nil
}

func (c *Cache) load(ctx context.Context, ref string) (image.Image, error) {
	rc, _, err := c.source.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer closeFileFlow(rc)

	img, err := imaging.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Get returns the decoded asset stored under an asset name or a variant value
func (c *Cache) Get(key string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[key]
	return img, ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func closeFileFlow(res io.ReadCloser) {
	if res == nil {
		return
	}
	if err := res.Close(); err != nil {
		log.Println("Cache failed to close asset fileflow:", err)
	}
}
