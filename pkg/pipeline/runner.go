package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timetable/pkg/cache"
	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of cached artifacts.
	TTL time.Duration
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
		TTL:    cache.TTLArtifact,
	}
}

// Parse reads every document in order and collects their warnings. It
// stops at the first document that fails to parse.
func (r *Runner) Parse(ctx context.Context, docs []Document, opts Options) ([]*Page, []Warning, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	if len(docs) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "no timetables given")
	}

	pages := make([]*Page, 0, len(docs))
	var warnings []Warning
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		p, err := Parse(ctx, doc, opts)
		if err != nil {
			return nil, nil, err
		}
		pages = append(pages, p)
		for _, w := range p.Warnings {
			warnings = append(warnings, Warning{Document: doc.Name, Warning: w})
		}
	}
	return pages, warnings, nil
}

// Execute parses docs and renders them into one artifact, one page per
// document. Artifacts are cached by the documents and the options that
// change the output.
func (r *Runner) Execute(ctx context.Context, docs []Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Format: opts.Format}

	// Stage 1: Parse
	parseStart := time.Now()
	pages, warnings, err := r.Parse(ctx, docs, opts)
	if err != nil {
		return nil, err
	}
	result.Pages = pages
	result.Warnings = warnings
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Pages = len(pages)
	for _, p := range pages {
		result.Stats.Lessons += p.Timetable.LessonCount()
	}

	r.Logger.Debug("parsed timetables",
		"pages", result.Stats.Pages,
		"lessons", result.Stats.Lessons,
		"warnings", len(warnings),
		"duration", result.Stats.ParseTime)

	// Stage 2: Compose and render
	renderStart := time.Now()
	artifact, hit, err := r.renderWithCache(ctx, docs, pages, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) renderWithCache(ctx context.Context, docs []Document, pages []*Page, opts Options) ([]byte, bool, error) {
	names := make([]string, len(docs))
	data := make([][]byte, len(docs))
	for i, d := range docs {
		names[i], data[i] = d.Name, d.Data
	}
	key := r.Keyer.ArtifactKey(cache.HashDocuments(names, data), opts.ArtifactKeyOpts())
	hooks := observability.Cache()

	if cached, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	} else if hit {
		hooks.OnCacheHit(ctx, "artifact")
		return cached, true, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	artifact, err := Render(ctx, pages, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, artifact, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(artifact))
	}
	return artifact, false, nil
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
