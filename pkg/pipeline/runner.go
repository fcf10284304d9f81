package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner holds no pipeline results; multiple goroutines can use the
// same Runner with different options. Charts are built per call and never
// shared.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	HTTP   *http.Client
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
		Cache:  cache.Observed(c),
		Keyer:  keyer,
		Logger: logger,
		HTTP:   NewHTTPClient(),
	}
}

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	source := opts.SourceLabel()
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, source)
	rows, dataHash, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, source, len(rows), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Rows = rows
	result.DataHash = dataHash
	result.ChartHash = opts.ChartHash(dataHash)
	result.Stats.Rows = len(rows)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded data",
		"source", source,
		"rows", len(rows),
		"duration", result.Stats.LoadTime)

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.ChartHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, opts.Recipe)
	c, err := Build(rows, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	var st chart.Stats
	if c != nil {
		st = chart.Inspect(c)
	}
	hooks.OnBuildComplete(ctx, opts.Recipe, st.Views, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Chart = c
	result.Stats.Views = st.Views
	result.Stats.Elements = st.Elements
	result.Stats.Shapes = st.Shapes

	r.Logger.Info("built chart",
		"recipe", opts.Recipe,
		"views", st.Views,
		"elements", st.Elements,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := r.RenderAndCache(ctx, c, result.ChartHash, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the rows named by opts and returns their content
// hash. Remote sources go through the data cache unless opts.Refresh is
// set; the returned bool reports a cache hit.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]data.Datum, string, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", false, err
	}
	if opts.Rows != nil {
		h, err := hashRows(opts.Rows)
		return opts.Rows, h, false, err
	}

	format, err := dataFormat(opts)
	if err != nil {
		return nil, "", false, err
	}

	if !IsRemote(opts.Source) {
		raw, err := readSource(opts.Source)
		if err != nil {
			return nil, "", false, err
		}
		rows, err := data.Parse(raw, format)
		return rows, cache.Hash(raw), false, err
	}

	cacheKey := r.Keyer.DataKey(opts.Source, "")
	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if rows, err := data.Parse(raw, format); err == nil {
				return rows, cache.Hash(raw), true, nil
			}
		}
	}

	raw, err := fetch(ctx, r.HTTP, opts.Source)
	if err != nil {
		return nil, "", false, err
	}
	rows, err := data.Parse(raw, format)
	if err != nil {
		return nil, "", false, err
	}
	if err := r.Cache.Set(ctx, cacheKey, raw, cache.TTLData); err != nil {
		r.Logger.Warn("cache data", "source", opts.Source, "err", err)
	}
	return rows, cache.Hash(raw), false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the hash and cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]data.Datum, error) {
	rows, _, _, err := r.LoadWithCacheInfo(ctx, opts)
	return rows, err
}

// cachedArtifacts returns every requested artifact when all are cached.
func (r *Runner) cachedArtifacts(ctx context.Context, chartHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
		b, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = b
	}
	return artifacts, len(artifacts) > 0
}

// RenderAndCache renders c and stores each artifact under chartHash.
func (r *Runner) RenderAndCache(ctx context.Context, c *view.Chart, chartHash string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	artifacts, err := Render(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	for format, b := range artifacts {
		key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, b, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "err", err)
		}
	}
	return artifacts, nil
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
