// Package worker contains the headless render worker: it consumes render jobs from the queue,
// watermarks the job sources from object storage and stores the results next to them
package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/UnendingLoop/BrandMarker/internal/assets"
	"github.com/UnendingLoop/BrandMarker/internal/batch"
	"github.com/UnendingLoop/BrandMarker/internal/imageproc"
	"github.com/UnendingLoop/BrandMarker/internal/model"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/zlog"
)

// errMalformedJob marks jobs that will never succeed: they are committed and dropped
var errMalformedJob = errors.New("malformed render job")

// JobStorage - контракт хранилища исходников и результатов
type JobStorage interface {
	Get(ctx context.Context, key string) (output io.ReadCloser, ctype string, err error)
	Put(ctx context.Context, key string, size int64, contentType string, r io.Reader) error
	List(ctx context.Context, prefix string) ([]string, error)
}

type BrandSource interface {
	Get(id model.BrandID) model.BrandConfig
}

type Committer interface {
	Commit(ctx context.Context, msg kafkago.Message) error
}

type Settings struct {
	Canvas       imageproc.CanvasConfig
	Quality      int
	ResultPrefix string
}

type Worker struct {
	storage  JobStorage
	assets   assets.Source
	brands   BrandSource
	queue    <-chan kafkago.Message
	consumer Committer
	cfg      Settings

	mu      sync.Mutex
	runners map[model.BrandID]*batch.Runner // по одному кэшу ресурсов на бренд
}

func NewWorkerInstance(strg JobStorage, src assets.Source, brands BrandSource, q <-chan kafkago.Message, cons Committer, cfg Settings) *Worker {
	return &Worker{
		storage:  strg,
		assets:   src,
		brands:   brands,
		queue:    q,
		consumer: cons,
		cfg:      cfg,
		runners:  map[model.BrandID]*batch.Runner{},
	}
}

func (w *Worker) StartWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-w.queue:
			if !ok {
				zlog.Logger.Info().Msg("Queue channel closed, stopping worker...")
				return
			}
			if err := w.handleMessage(ctx, msg); err != nil {
				if !errors.Is(err, errMalformedJob) {
					// не коммитим - задача вернётся после рестарта консьюмера
					zlog.Logger.Error().Err(err).Str("key", string(msg.Key)).Msg("Render job failed")
					continue
				}
				zlog.Logger.Warn().Err(err).Str("key", string(msg.Key)).Msg("Dropping render job")
			}
			if err := w.consumer.Commit(ctx, msg); err != nil {
				zlog.Logger.Error().Err(err).Msg("Failed to commit queue-message")
			}
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var job model.RenderJob
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		return fmt.Errorf("%w: %v", errMalformedJob, err)
	}
	if job.ID == "" {
		job.ID = string(msg.Key)
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	results, err := w.processJob(ctx, job)
	if err != nil {
		return err
	}

	if failed := failedCount(results); failed > 0 {
		zlog.Logger.Warn().
			Str("job_id", job.ID).
			Int("failed", failed).
			Int("total", len(results)).
			Msg("Render job finished with failed items")
	}
	return nil
}

func failedCount(results []model.BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != "" {
			n++
		}
	}
	return n
}

// processJob renders every source of the job; item failures are reported in the results, never abort the job
func (w *Worker) processJob(ctx context.Context, job model.RenderJob) ([]model.BatchResult, error) {
	logger := zlog.Logger.With().Str("job_id", job.ID).Logger()

	brand := w.brands.Get(job.Brand)
	if brand.ID != job.Brand {
		logger.Warn().Str("requested", string(job.Brand)).Str("used", string(brand.ID)).Msg("Unknown brand, using fallback")
	}

	variant, ok := brand.Variant(job.Variant)
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", errMalformedJob, model.ErrUnknownVariant, job.Variant)
	}

	runner, err := w.runnerFor(ctx, brand)
	if err != nil {
		return nil, err
	}

	keys, err := w.expandSources(ctx, job.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to list job sources: %w", err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %w", errMalformedJob, model.ErrNoImages)
	}

	// собираем исходники; неудачное чтение сразу идёт в результат
	results := make([]model.BatchResult, len(keys))
	sources := make([]model.SourceImage, 0, len(keys))
	positions := make([]int, 0, len(keys))
	for i, key := range keys {
		src, err := w.fetchSource(ctx, key)
		if err != nil {
			logger.Error().Err(err).Str("key", key).Msg("Failed to fetch job source")
			results[i] = model.BatchResult{Original: src, Err: err.Error()}
			continue
		}
		sources = append(sources, src)
		positions = append(positions, i)
	}

	rendered := runner.Run(ctx, sources, variant, job.Options, func(fraction float64, current, total int) {
		logger.Debug().Int("current", current).Int("total", total).Float64("fraction", fraction).Msg("Job progress")
	})

	saved := 0
	for j, r := range rendered {
		i := positions[j]
		results[i] = r
		if r.Processed == nil {
			continue
		}

		key := w.cfg.ResultPrefix + job.ID + "/" + r.Processed.Filename
		if err := w.storage.Put(ctx, key, int64(r.Processed.Size), model.JPEG, bytes.NewReader(r.Processed.Blob)); err != nil {
			logger.Error().Err(err).Str("key", key).Msg("Failed to store job result")
			results[i].Processed = nil
			results[i].Err = fmt.Sprintf("failed to store result: %v", err)
			continue
		}
		saved++
	}

	logger.Info().
		Str("brand", string(brand.ID)).
		Str("variant", variant.Value).
		Int("total", len(keys)).
		Int("saved", saved).
		Msg("Render job finished")

	return results, nil
}

func (w *Worker) runnerFor(ctx context.Context, b model.BrandConfig) (*batch.Runner, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if r, ok := w.runners[b.ID]; ok {
		return r, nil
	}

	cache := assets.NewCache(b, w.assets)
	comp, err := imageproc.NewCompositor(b, cache, w.cfg.Canvas, w.cfg.Quality)
	if err != nil {
		return nil, err
	}
	if err := cache.Preload(ctx); err != nil {
		return nil, err
	}

	r := batch.NewRunner(comp)
	w.runners[b.ID] = r
	return r, nil
}

// expandSources replaces keys ending with "/" by every object under that prefix
func (w *Worker) expandSources(ctx context.Context, sources []string) ([]string, error) {
	res := make([]string, 0, len(sources))
	for _, s := range sources {
		if !strings.HasSuffix(s, "/") {
			res = append(res, s)
			continue
		}
		keys, err := w.storage.List(ctx, s)
		if err != nil {
			return nil, err
		}
		res = append(res, keys...)
	}
	return res, nil
}

func (w *Worker) fetchSource(ctx context.Context, key string) (model.SourceImage, error) {
	src := model.SourceImage{Filename: path.Base(key)}

	r, ctype, err := w.storage.Get(ctx, key)
	if err != nil {
		return src, err
	}
	defer closeFileFlow(r)

	data, err := io.ReadAll(r)
	if err != nil {
		return src, err
	}

	src.ContentType = ctype
	src.Data = data
	src.Size = int64(len(data))
	return src, nil
}

func closeFileFlow(res io.ReadCloser) {
	if res == nil {
		return
	}

	if err := res.Close(); err != nil {
		zlog.Logger.Warn().Err(err).Msg("Worker failed to close fileflow")
	}
}
