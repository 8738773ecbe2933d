package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierview/pkg/cache"
	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/observability"
	"github.com/matzehuels/hierview/pkg/session"
	"github.com/matzehuels/hierview/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, session store and logger -
// it doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Sessions session.Store // optional; required for Options.Session
	Logger   *log.Logger
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

// WithSessions sets the store used to resolve Options.Session.
func (r *Runner) WithSessions(s session.Store) *Runner {
	r.Sessions = s
	return r
}

// Execute runs the complete load → build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	st, err := r.ResolveSession(ctx, &opts)
	if err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		Session:   st,
	}

	// Stage 1: Load and build
	buildStart := time.Now()
	doc, err := LoadDocument(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	t, err := r.Build(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Document = doc
	result.DocumentHash = HashDocument(doc)
	result.Tree = t
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = t.Len()

	r.Logger.Info("built tree",
		"source", opts.describe(),
		"nodes", t.Len(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PlacedCount = len(layout.Nodes)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"viz", layout.VizType,
		"placed", len(layout.Nodes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, DisplayNode(t, layout), opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ResolveSession loads the view state named by opts.Session and fills the
// options it leaves unset. It returns nil when no session is requested.
func (r *Runner) ResolveSession(ctx context.Context, opts *Options) (*session.ViewState, error) {
	if opts.Session == "" {
		return nil, nil
	}
	if r.Sessions == nil {
		return nil, errs.New(errs.ErrCodeUnsupported, "sessions are not enabled")
	}
	if err := session.ValidateID(opts.Session); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "session %q", opts.Session)
	}
	st, err := r.Sessions.Get(ctx, opts.Session)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if st == nil {
		return nil, errs.New(errs.ErrCodeNotFound, "session %s not found", opts.Session)
	}
	opts.ApplySession(st)
	return st, nil
}

// Build constructs the tree described by doc.
func (r *Runner) Build(ctx context.Context, doc graph.Document, opts Options) (*tree.Tree, error) {
	source := opts.describe()
	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, source)

	t, err := tree.Build(doc.Nodes, doc.TreeOptions())

	n := 0
	if t != nil {
		n = t.Len()
	}
	observability.Pipeline().OnBuildComplete(ctx, source, n, time.Since(start), err)
	return t, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc graph.Document, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(HashDocument(doc), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, cacheKey); hit {
			cached, err := graph.UnmarshalLayout(data)
			if err == nil {
				return cached, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "key", cacheKey, "error", err)
		}
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.VizType, doc.NodeCount())
	layout, err := ComputeLayout(doc, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, false, err
	}

	if data, err := graph.MarshalLayout(layout); err == nil {
		r.cacheSet(ctx, cacheKey, data, cache.TTLLayout)
	}

	return layout, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc graph.Document, opts Options) (graph.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// root is the display root used by the dot and outline formats; it may be
// nil when neither is requested.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout graph.Layout, root *tree.Node, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := graph.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit := r.cacheGet(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, layout, root, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.cacheSet(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout graph.Layout, root *tree.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, root, opts)
	return artifacts, err
}

// Close releases resources held by the runner (the cache and session store).
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Sessions != nil {
		if serr := r.Sessions.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// cacheGet reads key and reports the outcome to the cache hooks. Backend
// errors count as misses.
func (r *Runner) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, cache.KeyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, cache.KeyType(key))
	}
	return data, hit
}

// cacheSet writes key, logging instead of failing the run.
func (r *Runner) cacheSet(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cache.KeyType(key), len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
