package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/elenamtz/nubegen/pkg/apperr"
	"github.com/elenamtz/nubegen/pkg/cache"
	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/palette"
	"github.com/elenamtz/nubegen/pkg/render"
)

// fakeRenderer returns a solid image and counts invocations, so pipeline
// behavior is testable without rasterizing any text.
type fakeRenderer struct {
	calls int
	fail  error
}

func (f *fakeRenderer) Render(ctx context.Context, weights map[string]int, opts render.Options) (image.Image, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 200, A: 255}), image.Point{}, draw.Src)
	return img, nil
}

func testConfig() config.Configuration {
	return config.Configuration{
		FinalColor: "#ff00d3",
		StopCount:  4,
		Words:      []string{"uno", "dos", "tres", "cuatro", "cinco"},
		Width:      400,
		Height:     320,
	}
}

func TestExecuteProducesVariations(t *testing.T) {
	fake := &fakeRenderer{}
	r := NewRunner(nil, fake, nil)

	result, err := r.Execute(context.Background(), Options{Config: testConfig(), Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Variations) != 5 {
		t.Fatalf("got %d variations, want 5", len(result.Variations))
	}
	if fake.calls != 5 {
		t.Errorf("renderer called %d times, want 5", fake.calls)
	}
	if len(result.Stops) != 4 {
		t.Errorf("got %d stops, want 4", len(result.Stops))
	}
	if result.Stops[3] != palette.MustParseHex("#ff00d3") {
		t.Error("last stop should be the anchor color")
	}
	for i, v := range result.Variations {
		if v.Index != i+1 {
			t.Errorf("variation %d has index %d", i, v.Index)
		}
		if v.Filename != render.Filename(i+1) {
			t.Errorf("variation %d filename = %q", i, v.Filename)
		}
		if len(v.Weights) != 5 {
			t.Errorf("variation %d has %d weights", i, len(v.Weights))
		}
		if len(v.PNG) == 0 || len(v.Thumb) == 0 {
			t.Errorf("variation %d missing artifacts", i)
		}
		if v.JSON != nil {
			t.Errorf("variation %d has JSON without requesting it", i)
		}
	}
}

func TestExecuteSeededIsReproducible(t *testing.T) {
	a, err := NewRunner(nil, &fakeRenderer{}, nil).Execute(context.Background(), Options{Config: testConfig(), Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunner(nil, &fakeRenderer{}, nil).Execute(context.Background(), Options{Config: testConfig(), Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Variations {
		wa, wb := a.Variations[i].Weights, b.Variations[i].Weights
		for word, weight := range wa {
			if wb[word] != weight {
				t.Fatalf("variation %d differs at %q: %d vs %d", i, word, weight, wb[word])
			}
		}
	}
}

func TestExecuteUsesArtifactCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Config: testConfig(), Seed: 42, Count: 3}

	first := &fakeRenderer{}
	resultA, err := NewRunner(c, first, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if resultA.Stats.CacheHits != 0 {
		t.Errorf("first run should miss, got %d hits", resultA.Stats.CacheHits)
	}

	second := &fakeRenderer{}
	resultB, err := NewRunner(c, second, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.calls != 0 {
		t.Errorf("second run should be fully cached, renderer called %d times", second.calls)
	}
	if resultB.Stats.CacheHits != 3 {
		t.Errorf("second run cache hits = %d, want 3", resultB.Stats.CacheHits)
	}
	for i := range resultA.Variations {
		if !bytes.Equal(resultA.Variations[i].PNG, resultB.Variations[i].PNG) {
			t.Errorf("variation %d PNG differs between cached runs", i)
		}
		if !resultB.Variations[i].Cached {
			t.Errorf("variation %d not marked cached", i)
		}
	}
}

func TestExecuteRandomSeedSkipsCacheLookup(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Config: testConfig(), Count: 2} // Seed 0

	resultA, err := NewRunner(c, &fakeRenderer{}, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second := &fakeRenderer{}
	resultB, err := NewRunner(c, second, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.calls != 2 {
		t.Errorf("unseeded runs must render fresh, renderer called %d times", second.calls)
	}
	if resultA.Seed == resultB.Seed {
		t.Error("unseeded runs should draw distinct effective seeds")
	}
}

func TestExecuteEmptyWordsRejected(t *testing.T) {
	cfg := testConfig()
	cfg.Words = nil
	_, err := NewRunner(nil, &fakeRenderer{}, nil).Execute(context.Background(), Options{Config: cfg})
	if !apperr.Is(err, apperr.ErrCodeEmptyWords) {
		t.Errorf("err = %v, want EMPTY_WORDS", err)
	}
}

func TestExecuteRenderFailureWrapped(t *testing.T) {
	fake := &fakeRenderer{fail: apperr.New(apperr.ErrCodeInternal, "font missing")}
	_, err := NewRunner(nil, fake, nil).Execute(context.Background(), Options{Config: testConfig(), Seed: 1})
	if !apperr.Is(err, apperr.ErrCodeRenderFailed) {
		t.Errorf("err = %v, want RENDER_FAILED", err)
	}
}

func TestExecuteJSONManifest(t *testing.T) {
	opts := Options{Config: testConfig(), Seed: 5, Count: 1, Formats: []string{FormatPNG, FormatJSON}}
	result, err := NewRunner(nil, &fakeRenderer{}, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Variations[0].JSON) == 0 {
		t.Fatal("JSON manifest missing")
	}
	if !bytes.Contains(result.Variations[0].JSON, []byte(`"#ff00d3"`)) {
		t.Error("manifest should list gradient stops in hex")
	}
}

func TestExecuteUnknownFormat(t *testing.T) {
	opts := Options{Config: testConfig(), Formats: []string{"svg"}}
	if _, err := NewRunner(nil, &fakeRenderer{}, nil).Execute(context.Background(), opts); err == nil {
		t.Error("unknown format should be rejected")
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(nil, &fakeRenderer{}, nil).Execute(ctx, Options{Config: testConfig(), Seed: 1}); err == nil {
		t.Error("cancelled context should abort the run")
	}
}
