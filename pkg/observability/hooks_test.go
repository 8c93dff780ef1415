package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "json", 512)
	p.OnLoadComplete(ctx, "json", 12, time.Millisecond, nil)
	p.OnSelectStart(ctx, "time=1")
	p.OnSelectComplete(ctx, "time=1", 3, time.Millisecond, nil)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "query")
	c.OnCacheMiss(ctx, "query")
	c.OnCacheSet(ctx, "query", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &recordingPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Pipeline().OnSelectStart(context.Background(), "x=1")
	if len(customPipeline.selects) != 1 || customPipeline.selects[0] != "x=1" {
		t.Errorf("selects = %v, want [x=1]", customPipeline.selects)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &recordingPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	SetCacheHooks(nil)
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
}

type recordingPipelineHooks struct {
	NoopPipelineHooks
	selects []string
}

func (r *recordingPipelineHooks) OnSelectStart(_ context.Context, query string) {
	r.selects = append(r.selects, query)
}

type testCacheHooks struct{ NoopCacheHooks }
