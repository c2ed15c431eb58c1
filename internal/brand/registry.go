// Package brand provides the registry of compiled-in brand profiles
package brand

import (
	"maps"
	"slices"

	"github.com/UnendingLoop/BrandMarker/internal/model"
)

type Registry struct {
	brands   map[model.BrandID]model.BrandConfig
	order    []model.BrandID
	fallback model.BrandID
}

// NewRegistry builds the registry of builtin brands. An unknown fallback id is replaced with DefaultBrand.
func NewRegistry(fallback model.BrandID) *Registry {
	return newRegistry(fallback, builtin...)
}

func newRegistry(fallback model.BrandID, configs ...model.BrandConfig) *Registry {
	r := &Registry{
		brands: make(map[model.BrandID]model.BrandConfig, len(configs)),
		order:  make([]model.BrandID, 0, len(configs)),
	}
	for _, c := range configs {
		if _, dup := r.brands[c.ID]; !dup {
			r.order = append(r.order, c.ID)
		}
		r.brands[c.ID] = c
	}

	r.fallback = fallback
	if _, ok := r.brands[fallback]; !ok && len(r.order) > 0 {
		r.fallback = DefaultBrand
		if _, ok := r.brands[DefaultBrand]; !ok {
			r.fallback = r.order[0]
		}
	}
	return r
}

// Get never fails: unknown ids resolve to the fallback brand
func (r *Registry) Get(id model.BrandID) model.BrandConfig {
	if c, ok := r.brands[id]; ok {
		return clone(c)
	}
	return clone(r.brands[r.fallback])
}

// Has reports whether id names a registered brand
func (r *Registry) Has(id model.BrandID) bool {
	_, ok := r.brands[id]
	return ok
}

func (r *Registry) List() []model.BrandConfig {
	res := make([]model.BrandConfig, 0, len(r.order))
	for _, id := range r.order {
		res = append(res, clone(r.brands[id]))
	}
	return res
}

func (r *Registry) Fallback() model.BrandID {
	return r.fallback
}

// clone keeps registry records immutable for callers
func clone(c model.BrandConfig) model.BrandConfig {
	c.Assets = maps.Clone(c.Assets)
	c.Variants = slices.Clone(c.Variants)
	return c
}
