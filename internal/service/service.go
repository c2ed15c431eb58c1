// Package service provides business-logic for the app
package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/UnendingLoop/BrandMarker/internal/assets"
	"github.com/UnendingLoop/BrandMarker/internal/batch"
	"github.com/UnendingLoop/BrandMarker/internal/export"
	"github.com/UnendingLoop/BrandMarker/internal/imageproc"
	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/UnendingLoop/BrandMarker/internal/mwlogger"
	"github.com/UnendingLoop/BrandMarker/internal/session"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
)

// BrandRegistry - контракт реестра брендов
type BrandRegistry interface {
	Get(id model.BrandID) model.BrandConfig
	Has(id model.BrandID) bool
	List() []model.BrandConfig
	Fallback() model.BrandID
}

// TaskPublisher - контракт для работы с очередью (поток прогресса)
type TaskPublisher interface {
	SendWithRetry(ctx context.Context, strategy retry.Strategy, key []byte, v []byte) error
}

// ImageStorage - контракт для выгрузки результатов в хранилище
type ImageStorage interface {
	Put(ctx context.Context, key string, size int64, contentType string, r io.Reader) error
}

type Options struct {
	Canvas       imageproc.CanvasConfig
	Quality      int
	MaxUpload    int64
	ExportPrefix string
}

// Прогресс не должен надолго тормозить батч - поэтому ретраи короткие
var progressRetry = retry.Strategy{
	Attempts: 2,
	Delay:    100 * time.Millisecond,
	Backoff:  2,
}

// engine is everything that lives exactly as long as one active brand
type engine struct {
	brand   model.BrandConfig
	cache   *assets.Cache
	runner  *batch.Runner
	gallery *session.Gallery
}

type WatermarkService struct {
	registry  BrandRegistry
	source    assets.Source
	publisher TaskPublisher
	storage   ImageStorage
	opts      Options

	mu     sync.RWMutex
	active *engine
}

// NewWatermarkService activates the registry fallback brand. Its resources are loaded by Warmup
// or by the first batch. pub and strg may be nil.
func NewWatermarkService(reg BrandRegistry, src assets.Source, pub TaskPublisher, strg ImageStorage, opts Options) (*WatermarkService, error) {
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = model.MaxUploadBytes
	}

	s := &WatermarkService{
		registry:  reg,
		source:    src,
		publisher: pub,
		storage:   strg,
		opts:      opts,
	}

	e, err := s.newEngine(reg.Get(reg.Fallback()))
	if err != nil {
		return nil, err
	}
	s.active = e
	return s, nil
}

func (s *WatermarkService) newEngine(b model.BrandConfig) (*engine, error) {
	cache := assets.NewCache(b, s.source)
	comp, err := imageproc.NewCompositor(b, cache, s.opts.Canvas, s.opts.Quality)
	if err != nil {
		return nil, err
	}
	return &engine{
		brand:   b,
		cache:   cache,
		runner:  batch.NewRunner(comp),
		gallery: session.NewGallery(),
	}, nil
}

func (s *WatermarkService) current() *engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *WatermarkService) Brands() []model.BrandConfig {
	return s.registry.List()
}

func (s *WatermarkService) ActiveBrand() model.BrandConfig {
	return s.current().brand
}

// ActivateBrand switches the active brand: a fresh resource cache is built and preloaded, and every
// gallery item of the previous brand is destroyed. Activating the active brand changes nothing.
func (s *WatermarkService) ActivateBrand(ctx context.Context, id model.BrandID) (model.BrandConfig, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	if !s.registry.Has(id) {
		return model.BrandConfig{}, model.ErrUnknownBrand
	}

	s.mu.Lock()
	if s.active.brand.ID == id {
		b := s.active.brand
		s.mu.Unlock()
		return b, nil
	}

	e, err := s.newEngine(s.registry.Get(id))
	if err != nil {
		s.mu.Unlock()
		logger.Error().Err(err).Str("brand", string(id)).Msg("Failed to build compositor for brand")
		return model.BrandConfig{}, model.ErrCommon500
	}
	old := s.active
	s.active = e
	s.mu.Unlock()

	old.gallery.Clear()
	logger.Info().
		Str("from", string(old.brand.ID)).
		Str("to", string(id)).
		Msg("Brand switched")

	// бренд уже переключен - при ошибке следующий батч попробует загрузить ресурсы заново
	if err := e.cache.Preload(ctx); err != nil {
		logger.Error().Err(err).Str("brand", string(id)).Msg("Failed to preload brand resources")
		return e.brand, err
	}
	return e.brand, nil
}

// Warmup preloads resources of the active brand
func (s *WatermarkService) Warmup(ctx context.Context) error {
	return s.current().cache.Preload(ctx)
}

// Process validates uploads, runs the accepted ones through the batch runner and adds successes to the gallery
func (s *WatermarkService) Process(ctx context.Context, uploads []model.SourceImage, variantValue string, opts model.RenderOptions) (*model.ProcessReport, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	if len(uploads) == 0 {
		return nil, model.ErrNoImages
	}

	e := s.current()
	variant, ok := e.brand.Variant(variantValue)
	if !ok {
		return nil, model.ErrUnknownVariant
	}

	report := &model.ProcessReport{BatchID: uuid.NewString()}
	valid := make([]model.SourceImage, 0, len(uploads))
	for _, u := range uploads {
		if err := validateUpload(&u, s.opts.MaxUpload); err != nil {
			logger.Warn().Err(err).Str("file", u.Filename).Msg("Upload rejected")
			report.Rejected = append(report.Rejected, model.BatchResult{Original: u, Err: err.Error()})
			continue
		}
		valid = append(valid, u)
	}
	if len(valid) == 0 {
		return report, model.ErrNoImages
	}

	if err := e.cache.Preload(ctx); err != nil {
		logger.Error().Err(err).Str("brand", string(e.brand.ID)).Msg("Brand resources are not available")
		return nil, err
	}

	report.Results = e.runner.Run(ctx, valid, variant, opts, s.progress(ctx, report.BatchID))
	report.Added = make([]model.ProcessedImage, 0, len(report.Results))
	for _, r := range report.Results {
		if r.Processed == nil {
			continue
		}
		report.Added = append(report.Added, e.gallery.Add(r.Original, *r.Processed, variant))
	}

	logger.Info().
		Str("batch_id", report.BatchID).
		Str("brand", string(e.brand.ID)).
		Str("variant", variant.Value).
		Int("total", len(valid)).
		Int("processed", len(report.Added)).
		Int("rejected", len(report.Rejected)).
		Msg("Batch finished")

	return report, nil
}

// Reapply re-renders gallery items from their originals with a new variant. Empty ids means the current selection.
func (s *WatermarkService) Reapply(ctx context.Context, ids []string, variantValue string, opts model.RenderOptions) ([]model.BatchResult, error) {
	logger := mwlogger.LoggerFromContext(ctx)
	e := s.current()

	variant, ok := e.brand.Variant(variantValue)
	if !ok {
		return nil, model.ErrUnknownVariant
	}

	var items []model.ProcessedImage
	if len(ids) == 0 {
		items = e.gallery.Selected()
	} else {
		for _, id := range ids {
			item, err := e.gallery.Get(id)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, model.ErrNothingSelected
	}

	if err := e.cache.Preload(ctx); err != nil {
		logger.Error().Err(err).Str("brand", string(e.brand.ID)).Msg("Brand resources are not available")
		return nil, err
	}

	sources := make([]model.SourceImage, 0, len(items))
	for _, item := range items {
		sources = append(sources, item.Original)
	}

	results := e.runner.Run(ctx, sources, variant, opts, s.progress(ctx, uuid.NewString()))
	for i, r := range results {
		if r.Processed == nil {
			continue
		}
		if _, err := e.gallery.Replace(items[i].ID, *r.Processed, variant); err != nil {
			// элемент удалили, пока шла перерисовка
			results[i].Processed = nil
			results[i].Err = err.Error()
		}
	}
	return results, nil
}

func (s *WatermarkService) Delete(ctx context.Context, id string) error {
	return s.current().gallery.Delete(id)
}

func (s *WatermarkService) Select(ctx context.Context, id string, selected bool) error {
	return s.current().gallery.Select(id, selected)
}

func (s *WatermarkService) SelectAll(ctx context.Context, selected bool) int {
	return s.current().gallery.SelectAll(selected)
}

func (s *WatermarkService) List(ctx context.Context) []model.ProcessedImage {
	return s.current().gallery.List()
}

// Display resolves a display handle of the active gallery
func (s *WatermarkService) Display(ctx context.Context, handle string) ([]byte, string, error) {
	return s.current().gallery.Blob(handle)
}

// Archive bundles selected processed images into a zip and returns its suggested name
func (s *WatermarkService) Archive(ctx context.Context) (string, []byte, error) {
	logger := mwlogger.LoggerFromContext(ctx)
	e := s.current()

	selected := e.gallery.Selected()
	if len(selected) == 0 {
		return "", nil, model.ErrNothingSelected
	}

	entries := make([]export.Entry, 0, len(selected))
	for _, item := range selected {
		entries = append(entries, export.Entry{Name: item.Processed.Filename, Data: item.Processed.Blob})
	}

	data, err := export.Archive(entries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build archive")
		return "", nil, model.ErrCommon500
	}
	return e.brand.ArchiveName(), data, nil
}

// Export writes selected processed images to object storage, continuing past single failures
func (s *WatermarkService) Export(ctx context.Context) (model.ExportReport, error) {
	logger := mwlogger.LoggerFromContext(ctx)
	e := s.current()

	selected := e.gallery.Selected()
	if len(selected) == 0 {
		return model.ExportReport{}, model.ErrNothingSelected
	}
	if s.storage == nil {
		logger.Error().Msg("Export requested but object storage is not configured")
		return model.ExportReport{}, model.ErrCommon500
	}

	report := model.ExportReport{Total: len(selected)}
	prefix := s.opts.ExportPrefix + string(e.brand.ID) + "/"
	for _, item := range selected {
		key := prefix + item.ID + "-" + item.Processed.Filename
		blob := item.Processed.Blob
		if err := s.storage.Put(ctx, key, int64(len(blob)), model.JPEG, bytes.NewReader(blob)); err != nil {
			logger.Error().Err(err).Str("key", key).Msg("Failed to export image")
			continue
		}
		report.Saved++
	}

	if report.Saved == 0 {
		return report, model.ErrCommon500
	}
	return report, nil
}

func (s *WatermarkService) progress(ctx context.Context, batchID string) model.ProgressFunc {
	logger := mwlogger.LoggerFromContext(ctx)

	return func(fraction float64, current, total int) {
		logger.Debug().
			Str("batch_id", batchID).
			Int("current", current).
			Int("total", total).
			Msg("Batch progress")

		if s.publisher == nil {
			return
		}
		ev, err := json.Marshal(model.ProgressEvent{BatchID: batchID, Fraction: fraction, Current: current, Total: total})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to encode progress event")
			return
		}
		if err := s.publisher.SendWithRetry(ctx, progressRetry, []byte(batchID), ev); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn().Err(err).Str("batch_id", batchID).Msg("Failed to publish batch progress")
		}
	}
}
