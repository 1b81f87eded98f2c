package embed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crux-triage/crux/internal/cache"
	"github.com/crux-triage/crux/internal/model"
	"github.com/crux-triage/crux/internal/worker"
)

// Embedder batches statement texts through a provider, with a cache in
// front and a shared rate limiter behind. Output is a plain EmbeddingSet;
// nothing downstream knows or cares whether a vector came from the cache.
type Embedder struct {
	provider Provider
	store    cache.Cache
	limiter  *worker.Limiter
	cfg      model.EmbedConfig
	cacheCfg model.CacheConfig
	workers  int
}

// NewEmbedder wires a provider to the cache and limiter. store may be nil to
// disable caching.
func NewEmbedder(provider Provider, store cache.Cache, cfg model.EmbedConfig, cacheCfg model.CacheConfig, workers int) *Embedder {
	if workers <= 0 {
		workers = 1
	}
	return &Embedder{
		provider: provider,
		store:    store,
		limiter:  worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		cfg:      cfg,
		cacheCfg: cacheCfg,
		workers:  workers,
	}
}

// EmbedStatements returns a vector for every statement it can embed, keyed
// by statement id. Statements whose batch fails are reported as an error:
// a partially embedded bundle would silently skew coherence measurements.
func (e *Embedder) EmbedStatements(ctx context.Context, statements []model.Statement) (model.EmbeddingSet, error) {
	set := make(model.EmbeddingSet, len(statements))

	var missIDs []string
	var missTexts []string
	for _, s := range statements {
		if v, ok := e.cached(s.Text); ok {
			set[s.ID] = v
			continue
		}
		missIDs = append(missIDs, s.ID)
		missTexts = append(missTexts, s.Text)
	}

	if len(missIDs) == 0 {
		return set, nil
	}

	batchSize := e.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}

	pool := worker.NewPool(ctx, e.workers)
	pool.Start()
	batches := 0
	for start := 0; start < len(missIDs); start += batchSize {
		end := start + batchSize
		if end > len(missIDs) {
			end = len(missIDs)
		}
		pool.Submit(&batchJob{
			embedder: e,
			ids:      missIDs[start:end],
			texts:    missTexts[start:end],
		})
		batches++
	}

	results := pool.Wait()
	if len(results) != batches {
		// A cancelled context makes the pool drop submissions.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("expected %d batch results, got %d", batches, len(results))
	}
	for _, result := range results {
		br := result.(*batchResult)
		if br.err != nil {
			return nil, fmt.Errorf("embed batch: %w", br.err)
		}
		for i, id := range br.ids {
			set[id] = br.vectors[i]
		}
	}

	return set, nil
}

// EmbedQuery embeds the user's query text.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) (model.Embedding, error) {
	if v, ok := e.cached(text); ok {
		return v, nil
	}
	vectors, err := e.embedWithRetry(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}
	e.storeVector(text, vectors[0])
	return vectors[0], nil
}

// embedWithRetry calls the provider through the shared limiter, retrying
// transient failures up to MaxRetries with a linearly growing backoff folded
// into the limiter wait.
func (e *Embedder) embedWithRetry(ctx context.Context, texts []string) ([][]float64, error) {
	retries := e.cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		delay := time.Duration(attempt*e.cfg.RetryBackoffMS) * time.Millisecond
		if err := e.limiter.WaitWithDelay(ctx, delay); err != nil {
			return nil, err
		}
		vectors, err := e.provider.Embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// batchJob embeds one slice of statements through the shared limiter.
type batchJob struct {
	embedder *Embedder
	ids      []string
	texts    []string
}

type batchResult struct {
	ids     []string
	vectors [][]float64
	err     error
}

func (r *batchResult) GetError() error { return r.err }

func (j *batchJob) Execute(ctx context.Context) worker.Result {
	vectors, err := j.embedder.embedWithRetry(ctx, j.texts)
	if err != nil {
		return &batchResult{ids: j.ids, err: err}
	}

	for i, text := range j.texts {
		j.embedder.storeVector(text, vectors[i])
	}
	return &batchResult{ids: j.ids, vectors: vectors}
}

func (e *Embedder) cached(text string) (model.Embedding, bool) {
	if e.store == nil || !e.cacheCfg.Enabled {
		return nil, false
	}
	data, found := e.store.Get(cache.EmbeddingKey(e.provider.Name(), e.cfg.Model, text))
	if !found {
		return nil, false
	}
	var v model.Embedding
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return v, true
}

func (e *Embedder) storeVector(text string, v []float64) {
	if e.store == nil || !e.cacheCfg.Enabled {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = e.store.Set(cache.EmbeddingKey(e.provider.Name(), e.cfg.Model, text), data, e.cacheCfg.TTL)
}
