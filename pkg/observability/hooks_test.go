package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEngineHooks struct {
	mutations int
	layouts   int
}

func (r *recordingEngineHooks) OnMutation(string, int)              { r.mutations++ }
func (r *recordingEngineHooks) OnLayoutStart(int)                   { r.layouts++ }
func (r *recordingEngineHooks) OnLayoutComplete(int, time.Duration) {}

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)      { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string)     { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(context.Context, string, int) { r.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic.
	Engine().OnMutation("add", 2)
	Engine().OnLayoutStart(1)
	Engine().OnLayoutComplete(1, time.Millisecond)
	Cache().OnCacheHit(context.Background(), "layout")
	Server().OnBroadcast(0)
}

func TestSetEngineHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingEngineHooks{}
	SetEngineHooks(rec)

	Engine().OnMutation("add", 2)
	Engine().OnMutation("remove", 2)
	Engine().OnLayoutStart(3)

	if rec.mutations != 2 {
		t.Errorf("mutations = %d, want 2", rec.mutations)
	}
	if rec.layouts != 1 {
		t.Errorf("layouts = %d, want 1", rec.layouts)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 128)
	Cache().OnCacheHit(ctx, "artifact")

	if rec.hits != 1 || rec.misses != 1 || rec.sets != 1 {
		t.Errorf("counts = %+v, want one of each", rec)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingEngineHooks{}
	SetEngineHooks(rec)
	SetEngineHooks(nil)

	Engine().OnMutation("select", 1)
	if rec.mutations != 1 {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingEngineHooks{}
	SetEngineHooks(rec)
	Reset()

	Engine().OnMutation("add", 1)
	if rec.mutations != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
