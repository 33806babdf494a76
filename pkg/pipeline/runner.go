package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/treepage/pkg/cache"
	"github.com/matzehuels/treepage/pkg/hierarchy"
	pkgio "github.com/matzehuels/treepage/pkg/io"
	"github.com/matzehuels/treepage/pkg/observability"
	"github.com/matzehuels/treepage/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different sources.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // lifetime of cached pages, cache.TTLPage when zero
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads src, sorts the requested page and renders it.
func (r *Runner) Execute(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:  uuid.NewString(),
		Format: opts.format,
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	recs, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Records = len(recs)
	logger.Debug("loaded records", "count", len(recs), "duration", result.Stats.LoadTime)

	hash, err := RecordsHash(recs)
	if err != nil {
		return nil, err
	}
	result.RecordsHash = hash

	// Repairs must reach the source, so a persisting run never short-cuts.
	cacheKey := r.Keyer.PageKey(hash, opts.PageKeyOpts())
	if !opts.Refresh && !opts.Persist {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cacheKey)
			logger.Debug("page served from cache", "key", cacheKey)
			result.Artifact = data
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, cacheKey)
	}

	// Stage 2: Sort
	sortStart := time.Now()
	page, matched := sortPage(ctx, recs, opts)
	result.Page = page
	result.Stats.SortTime = time.Since(sortStart)
	result.Stats.Matched = matched
	result.Stats.Emitted = len(page.Nodes)
	result.Stats.Repaired = len(page.Repaired)
	observability.Pager().OnSortComplete(ctx, len(page.Nodes), page.Visited, result.Stats.SortTime)

	logger.Info("sorted page",
		"page", opts.Page,
		"per_page", opts.PerPage,
		"records", matched,
		"emitted", len(page.Nodes),
		"context", page.Ancestors,
		"duration", result.Stats.SortTime)
	if len(page.Orphaned) > 0 {
		logger.Warn("records reference unknown parents", "parents", page.Orphaned)
	}

	// Stage 3: Persist
	if len(page.Repaired) > 0 {
		if opts.Persist {
			if err := persistRepairs(ctx, src, page.Repaired); err != nil {
				return nil, fmt.Errorf("persist repairs: %w", err)
			}
			logger.Info("persisted repairs", "count", len(page.Repaired))
		} else {
			logger.Warn("cleared self-referencing parents", "count", len(page.Repaired))
		}
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifact, err := Render(ctx, page, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Debug("rendered page", "format", opts.Format, "bytes", len(artifact), "duration", result.Stats.RenderTime)

	// Repaired records changed, so the key computed above no longer matches
	// what the next load will hash to.
	if !opts.Persist || len(page.Repaired) == 0 {
		if err := r.Cache.Set(ctx, cacheKey, artifact, r.ttl()); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKey, len(artifact))
		} else {
			logger.Debug("cache store failed", "error", err)
		}
	}

	return result, nil
}

// SortRecords sorts records already in memory. The records are indexed so
// that parents filtered out by opts.Match still resolve.
func SortRecords(recs []*hierarchy.Record, opts Options) (hierarchy.Page, error) {
	if err := opts.Validate(); err != nil {
		return hierarchy.Page{}, err
	}
	page, _ := sortPage(context.Background(), recs, opts)
	return page, nil
}

func sortPage(ctx context.Context, recs []*hierarchy.Record, opts Options) (hierarchy.Page, int) {
	w := opts.Window()
	hierarchy.NewIndex(recs)
	nodes := hierarchy.Match(hierarchy.Nodes(recs), opts.Match)
	observability.Pager().OnSortStart(ctx, len(nodes), w.Page, w.PerPage)

	tree := hierarchy.Build(nodes, hierarchy.WithRepairHook(func(n hierarchy.Node) {
		observability.Pager().OnRepair(ctx, n.ID())
	}))
	return hierarchy.Flatten(tree, w), len(nodes)
}

func persistRepairs(ctx context.Context, src source.Source, repaired []hierarchy.Node) error {
	recs := make([]*hierarchy.Record, 0, len(repaired))
	for _, n := range repaired {
		if r, ok := n.(*hierarchy.Record); ok {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return nil
	}
	return src.Save(ctx, recs...)
}

// RecordsHash returns the content hash of recs in stored order.
func RecordsHash(recs []*hierarchy.Record) (string, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(recs, &buf); err != nil {
		return "", fmt.Errorf("hash records: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLPage
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
