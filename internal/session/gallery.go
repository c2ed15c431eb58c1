// Package session keeps the in-memory gallery of processed images and owns their display handles
package session

import (
	"sync"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/google/uuid"
)

type blobEntry struct {
	data  []byte
	ctype string
}

// Gallery is an ordered list of processed images. Every original and processed blob shown to a client
// is reachable through a handle; a handle is released exactly once, when its item is replaced,
// deleted or the gallery is cleared.
type Gallery struct {
	mu      sync.RWMutex
	order   []string
	items   map[string]*model.ProcessedImage
	handles map[string]blobEntry
}

func NewGallery() *Gallery {
	return &Gallery{
		items:   map[string]*model.ProcessedImage{},
		handles: map[string]blobEntry{},
	}
}

// Add stores a successful batch item, unselected, with the variant it was rendered with
func (g *Gallery) Add(orig model.SourceImage, out model.Rendered, variant model.WatermarkVariant) model.ProcessedImage {
	g.mu.Lock()
	defer g.mu.Unlock()

	item := &model.ProcessedImage{
		ID:        uuid.NewString(),
		Original:  orig,
		Processed: out,
		Variant:   variant.Value,
		Label:     model.MarkTypeLabel(variant.Value),
	}
	item.Original.Handle = g.register(orig.Data, orig.ContentType)
	item.Processed.Handle = g.register(out.Blob, model.JPEG)

	g.items[item.ID] = item
	g.order = append(g.order, item.ID)

	return *item
}

// Replace swaps the processed half of an item. The old handle is released before the new one is issued.
func (g *Gallery) Replace(id string, out model.Rendered, variant model.WatermarkVariant) (model.ProcessedImage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	item, ok := g.items[id]
	if !ok {
		return model.ProcessedImage{}, model.ErrImageNotFound
	}

	g.release(item.Processed.Handle)

	item.Processed = out
	item.Processed.Handle = g.register(out.Blob, model.JPEG)
	item.Variant = variant.Value
	item.Label = model.MarkTypeLabel(variant.Value)

	return *item, nil
}

func (g *Gallery) Get(id string) (model.ProcessedImage, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	item, ok := g.items[id]
	if !ok {
		return model.ProcessedImage{}, model.ErrImageNotFound
	}
	return *item, nil
}

// Delete removes an item and releases both of its handles
func (g *Gallery) Delete(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	item, ok := g.items[id]
	if !ok {
		return model.ErrImageNotFound
	}

	g.release(item.Original.Handle)
	g.release(item.Processed.Handle)
	delete(g.items, id)

	for i, v := range g.order {
		if v == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

func (g *Gallery) Select(id string, selected bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	item, ok := g.items[id]
	if !ok {
		return model.ErrImageNotFound
	}
	item.Selected = selected
	return nil
}

// SelectAll sets the flag on every item and returns how many items there are
func (g *Gallery) SelectAll(selected bool) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, item := range g.items {
		item.Selected = selected
	}
	return len(g.items)
}

// List returns items in insertion order
func (g *Gallery) List() []model.ProcessedImage {
	return g.filter(func(*model.ProcessedImage) bool { return true })
}

func (g *Gallery) Selected() []model.ProcessedImage {
	return g.filter(func(p *model.ProcessedImage) bool { return p.Selected })
}

func (g *Gallery) filter(keep func(*model.ProcessedImage) bool) []model.ProcessedImage {
	g.mu.RLock()
	defer g.mu.RUnlock()

	res := make([]model.ProcessedImage, 0, len(g.order))
	for _, id := range g.order {
		if item := g.items[id]; keep(item) {
			res = append(res, *item)
		}
	}
	return res
}

// Clear destroys every item and releases all handles
func (g *Gallery) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, item := range g.items {
		g.release(item.Original.Handle)
		g.release(item.Processed.Handle)
	}
	clear(g.items)
	g.order = nil
}

// Blob resolves a display handle
func (g *Gallery) Blob(handle string) ([]byte, string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.handles[handle]
	if !ok {
		return nil, "", model.ErrHandleReleased
	}
	return e.data, e.ctype, nil
}

// Handles - число живых хендлов
func (g *Gallery) Handles() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.handles)
}

func (g *Gallery) register(data []byte, ctype string) string {
	h := uuid.NewString()
	g.handles[h] = blobEntry{data: data, ctype: ctype}
	return h
}

func (g *Gallery) release(handle string) {
	delete(g.handles, handle)
}
