package observability

import (
	"context"
	"testing"
	"time"
)

type recordingHooks struct {
	starts    int
	completes int
	hits      int
}

func (r *recordingHooks) OnVariationStart(context.Context, int) { r.starts++ }
func (r *recordingHooks) OnVariationComplete(context.Context, int, time.Duration, error) {
	r.completes++
}
func (r *recordingHooks) OnCacheHit(context.Context, string) { r.hits++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	SetRenderHooks(nil)
	h := Render()
	// Must not panic
	h.OnVariationStart(context.Background(), 0)
	h.OnVariationComplete(context.Background(), 0, time.Second, nil)
	h.OnCacheHit(context.Background(), "key")
}

func TestSetRenderHooks(t *testing.T) {
	rec := &recordingHooks{}
	SetRenderHooks(rec)
	defer SetRenderHooks(nil)

	Render().OnVariationStart(context.Background(), 1)
	Render().OnCacheHit(context.Background(), "k")
	if rec.starts != 1 || rec.hits != 1 {
		t.Errorf("hooks not routed: %+v", rec)
	}
}

func TestSetNilRestoresNoop(t *testing.T) {
	SetRenderHooks(&recordingHooks{})
	SetRenderHooks(nil)
	if _, ok := Render().(noopRenderHooks); !ok {
		t.Error("nil registration should restore the no-op hooks")
	}
}
