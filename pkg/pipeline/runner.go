package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/vischart/pkg/cache"
	"github.com/matzehuels/vischart/pkg/compile"
	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/data/source"
	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/observability"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/spec"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different charts and options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Resolver source.Resolver // named data; nil means only inline data works
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, resolver source.Resolver, logger *log.Logger) *Runner {
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
		Cache:    c,
		Keyer:    keyer,
		Resolver: resolver,
		Logger:   logger,
	}
}

// Execute runs resolve → aggregate → compile → render for one chart.
func (r *Runner) Execute(ctx context.Context, c *spec.ChartSpec, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	id := uuid.NewString()
	logger := opts.Logger.With("run", id)

	result := &Result{
		ID:        id,
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Resolve
	resolveStart := time.Now()
	rows, err := r.Resolve(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	// Stage 2: Aggregate
	eff, err := Prepare(c, rows, opts)
	if err != nil {
		return nil, err
	}
	eff, rows, err = Aggregate(eff, eff.Data.Values)
	if err != nil {
		return nil, err
	}
	eff.Data = spec.Inline(rows...)
	result.Stats.Rows = len(rows)
	result.Stats.ResolveTime = time.Since(resolveStart)

	logger.Debug("resolved data",
		"named", !c.Data.IsInline(),
		"rows", len(rows),
		"duration", result.Stats.ResolveTime)

	// Stage 3: Compile
	compileStart := time.Now()
	sc, sceneHash, sceneHit, err := r.CompileWithCacheInfo(ctx, eff, opts)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	st := scene.Summarize(sc)
	result.Scene = sc
	result.SceneHash = sceneHash
	result.Stats.Marks = st.Marks
	result.Stats.Items = st.Items
	result.Stats.CompileTime = time.Since(compileStart)
	result.CacheInfo.SceneHit = sceneHit

	logger.Info("compiled chart",
		"mark", markName(eff),
		"items", st.Items,
		"cached", sceneHit,
		"duration", result.Stats.CompileTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sc, sceneHash, eff.Title, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteAll runs Execute for every chart concurrently, bounded by
// GOMAXPROCS. Results are in input order; the first error cancels the rest.
func (r *Runner) ExecuteAll(ctx context.Context, charts []*spec.ChartSpec, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	results := make([]*Result, len(charts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range charts {
		g.Go(func() error {
			res, err := r.Execute(ctx, c, opts)
			if err != nil {
				return fmt.Errorf("chart %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Resolve returns the rows of c. Inline rows are returned as is; named data
// goes through the runner's resolver, cached under the data TTL unless
// opts.Refresh is set.
func (r *Runner) Resolve(ctx context.Context, c *spec.ChartSpec, opts Options) ([]data.Row, error) {
	if c.Data.IsInline() {
		return c.Data.Values, nil
	}
	name := c.Data.Name
	if r.Resolver == nil {
		return nil, errors.InvalidData("no data source configured for %q", name)
	}

	resolver := r.Resolver
	if !opts.Refresh {
		resolver = source.Cached(resolver, r.Cache, r.Keyer, sourceName(r.Resolver), cache.TTLData)
	}

	hooks := observability.Pipeline()
	hooks.OnResolveStart(ctx, name)
	start := time.Now()
	rows, err := resolver.Resolve(ctx, name)
	hooks.OnResolveComplete(ctx, name, len(rows), time.Since(start), err)
	return rows, err
}

// Prepare returns the chart that is actually compiled: a copy of c holding
// rows inline, with the size overrides of opts applied and validated.
func Prepare(c *spec.ChartSpec, rows []data.Row, opts Options) (*spec.ChartSpec, error) {
	eff := c.Clone()
	eff.Data = spec.Inline(rows...)
	if opts.Width > 0 {
		eff.Width = opts.Width
	}
	if opts.Height > 0 {
		eff.Height = opts.Height
	}
	if err := eff.Validate(); err != nil {
		return nil, err
	}
	return eff, nil
}

// CompileWithCacheInfo compiles an inline chart, caching the scene under the
// hash of the chart. It returns the scene, the hash of its encoding and
// whether it came from cache.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, c *spec.ChartSpec, opts Options) (*scene.Scene, string, bool, error) {
	r.applyLogger(&opts)
	specData, err := json.Marshal(c)
	if err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeInternal, err, "serialize chart for cache key")
	}
	cacheKey := r.Keyer.SceneKey(cache.Hash(specData))

	if !opts.Refresh {
		if encoded, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if sc, err := scene.Decode(encoded); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return sc, cache.Hash(encoded), true, nil
			}
			// Undecodable entries fall through and are overwritten.
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	sc, err := Compile(ctx, c)
	if err != nil {
		return nil, "", false, err
	}

	encoded, err := scene.Encode(sc)
	if err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	if err := r.Cache.Set(ctx, cacheKey, encoded, cache.TTLScene); err == nil {
		observability.Cache().OnCacheSet(ctx, "scene", len(encoded))
	} else {
		opts.Logger.Warn("cache scene", "error", err)
	}
	return sc, cache.Hash(encoded), false, nil
}

// Compile compiles an inline chart and reports it to the pipeline hooks.
func Compile(ctx context.Context, c *spec.ChartSpec) (*scene.Scene, error) {
	mark := markName(c)
	hooks := observability.Pipeline()
	hooks.OnCompileStart(ctx, mark)
	start := time.Now()

	sc, err := compile.CompileRows(c, c.Data.Values)

	items := 0
	if sc != nil {
		items = scene.Summarize(sc).Items
	}
	hooks.OnCompileComplete(ctx, mark, items, time.Since(start), err)
	return sc, err
}

// RenderWithCacheInfo renders sc in every requested format. When every
// format is cached the cached artifacts are returned and the bool is true.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc *scene.Scene, sceneHash, title string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format, title))
			b, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = b
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, sc, title, opts)
	if err != nil {
		return nil, false, err
	}

	for format, b := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format, title))
		if err := r.Cache.Set(ctx, cacheKey, b, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(b))
		}
	}
	return rendered, false, nil
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

func markName(c *spec.ChartSpec) string {
	switch {
	case c.Mark != nil:
		return string(c.Mark.Type)
	case len(c.Layer) > 0:
		return "layer"
	}
	return ""
}

func sourceName(r source.Resolver) string {
	if s, ok := r.(fmt.Stringer); ok {
		return s.String()
	}
	return "default"
}
