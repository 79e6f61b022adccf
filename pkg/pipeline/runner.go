package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elenamtz/nubegen/pkg/apperr"
	"github.com/elenamtz/nubegen/pkg/cache"
	"github.com/elenamtz/nubegen/pkg/freq"
	"github.com/elenamtz/nubegen/pkg/observability"
	"github.com/elenamtz/nubegen/pkg/palette"
	"github.com/elenamtz/nubegen/pkg/render"
)

// Runner executes pipeline runs with artifact caching.
//
// The Runner is stateless except for the cache, renderer, and logger - it
// doesn't retain results. A single Runner is shared by the CLI and the
// dashboard session.
type Runner struct {
	Cache    cache.Cache
	Renderer render.Renderer
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default() is used.
func NewRunner(c cache.Cache, renderer render.Renderer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Renderer: renderer,
		Logger:   logger,
	}
}

// manifest is the JSON artifact written per variation when requested.
type manifest struct {
	Variation int            `json:"variation"`
	Weights   map[string]int `json:"weights"`
	Stops     []string       `json:"stops"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Seed      uint64         `json:"seed"`
}

// Execute runs the complete gradient → weights → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if r.Renderer == nil {
		return nil, apperr.New(apperr.ErrCodeInternal, "runner has no renderer")
	}

	stops, err := opts.Config.Stops()
	if err != nil {
		return nil, err
	}

	// Seed zero means a one-off run; artifacts would never be looked up
	// again under a fresh random seed, so cache lookups are skipped.
	seed := opts.Seed
	deterministic := seed != 0
	if !deterministic {
		seed = rand.Uint64()
	}
	rng := freq.NewRand(seed)
	mappings := freq.Variations(rng, opts.Config.Words, opts.Count)

	cfgJSON, err := json.Marshal(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("hash configuration: %w", err)
	}
	cfgHash := cache.Hash(cfgJSON)

	result := &Result{
		Seed:       seed,
		Stops:      stops,
		Variations: make([]Variation, 0, opts.Count),
	}
	renderOpts := render.Options{
		Width:   opts.Config.Width,
		Height:  opts.Config.Height,
		Palette: palette.Colors(stops),
	}

	start := time.Now()
	for i, weights := range mappings {
		v, err := r.renderOne(ctx, i, weights, cfgHash, seed, deterministic, renderOpts, opts)
		if err != nil {
			return nil, err
		}
		if v.Cached {
			result.Stats.CacheHits++
		}
		result.Variations = append(result.Variations, v)
	}
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered variations",
		"count", opts.Count,
		"size", fmt.Sprintf("%dx%d", opts.Config.Width, opts.Config.Height),
		"cacheHits", result.Stats.CacheHits,
		"duration", result.Stats.RenderTime.Round(time.Millisecond))

	return result, nil
}

func (r *Runner) renderOne(ctx context.Context, i int, weights map[string]int, cfgHash string, seed uint64, deterministic bool, renderOpts render.Options, opts Options) (Variation, error) {
	if err := ctx.Err(); err != nil {
		return Variation{}, err
	}

	key := cache.ArtifactKey(cfgHash, cache.ArtifactKeyOpts{Seed: seed, Index: i, Format: FormatPNG})
	hooks := observability.Render()
	hooks.OnVariationStart(ctx, i+1)
	start := time.Now()

	var pngData []byte
	var img image.Image
	cached := false

	if deterministic && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if decoded, err := render.DecodePNG(data); err == nil {
				pngData, img, cached = data, decoded, true
				hooks.OnCacheHit(ctx, key)
				r.Logger.Debug("artifact cache hit", "variation", i+1)
			}
			// Undecodable cache entries fall through to a fresh render
		}
	}

	if img == nil {
		rendered, err := r.Renderer.Render(ctx, weights, renderOpts)
		if err != nil {
			hooks.OnVariationComplete(ctx, i+1, time.Since(start), err)
			return Variation{}, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "variation %d", i+1)
		}
		pngData, err = render.EncodePNG(rendered)
		if err != nil {
			hooks.OnVariationComplete(ctx, i+1, time.Since(start), err)
			return Variation{}, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "variation %d", i+1)
		}
		img = rendered
		if deterministic {
			_ = r.Cache.Set(ctx, key, pngData, cache.TTLArtifact)
		}
	}

	thumb, err := render.EncodePNG(render.Thumbnail(img, opts.PreviewWidth))
	if err != nil {
		return Variation{}, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "thumbnail %d", i+1)
	}

	v := Variation{
		Index:    i + 1,
		Weights:  weights,
		PNG:      pngData,
		Thumb:    thumb,
		Filename: render.Filename(i + 1),
		Cached:   cached,
	}

	if opts.wantsJSON() {
		m := manifest{
			Variation: i + 1,
			Weights:   weights,
			Stops:     r.stopsHex(opts),
			Width:     opts.Config.Width,
			Height:    opts.Config.Height,
			Seed:      seed,
		}
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return Variation{}, fmt.Errorf("encode manifest: %w", err)
		}
		v.JSON = data
	}

	hooks.OnVariationComplete(ctx, i+1, time.Since(start), nil)
	r.Logger.Debug("variation ready",
		"index", i+1,
		"words", len(weights),
		"cached", cached,
		"duration", time.Since(start).Round(time.Millisecond))
	return v, nil
}

func (r *Runner) stopsHex(opts Options) []string {
	stops, err := opts.Config.Stops()
	if err != nil {
		return nil
	}
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.Hex()
	}
	return out
}
