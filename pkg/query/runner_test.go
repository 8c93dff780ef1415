package query

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/viewstack/pkg/cache"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/observability"
	"github.com/matzehuels/viewstack/pkg/render/nodelink"
	"github.com/matzehuels/viewstack/pkg/view"
)

const doc = `{
  "kind": "composite",
  "tag": "aggregate",
  "branches": [
    {
      "kind": "map", "group": "Stack", "label": "a",
      "dims": [{"name": "time", "type": "int"}],
      "entries": [
        {"key": [1], "node": {"kind": "element", "group": "Curve", "data": [1, 2]}},
        {"key": [2], "node": {"kind": "element", "group": "Curve", "data": [3, 4]}}
      ]
    },
    {
      "kind": "map", "group": "Stack", "label": "b",
      "dims": [{"name": "time", "type": "int"}],
      "entries": [
        {"key": [2], "node": {"kind": "element", "group": "Curve", "data": [5, 6]}}
      ]
    }
  ]
}`

type recorder struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) OnLoadStart(context.Context, string, int) { r.add("load") }
func (r *recorder) OnSelectComplete(_ context.Context, q string, _ int, _ time.Duration, err error) {
	if err != nil {
		r.add("select-error")
		return
	}
	r.add("select " + q)
}
func (r *recorder) OnRenderStart(_ context.Context, format string) { r.add("render " + format) }
func (r *recorder) OnCacheHit(_ context.Context, keyType string)   { r.add("hit " + keyType) }
func (r *recorder) OnCacheMiss(_ context.Context, keyType string)  { r.add("miss " + keyType) }
func (r *recorder) OnCacheSet(_ context.Context, keyType string, _ int) {
	r.add("set " + keyType)
}

func newRecorder(t *testing.T) *recorder {
	t.Helper()
	rec := &recorder{}
	observability.SetPipelineHooks(rec)
	observability.SetCacheHooks(rec)
	t.Cleanup(observability.Reset)
	return rec
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestRunnerSelect(t *testing.T) {
	rec := newRecorder(t)
	r := newFileRunner(t)
	ctx := context.Background()

	res, err := r.Select(ctx, []byte(doc), "json", []string{"time=2"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Error("first Select should not be cached")
	}
	c, ok := res.Node.(*view.Composite)
	if !ok {
		t.Fatalf("Select() node = %T, want composite", res.Node)
	}
	keys := []string{}
	for _, k := range c.Keys() {
		keys = append(keys, k.String())
	}
	if diff := cmp.Diff([]string{"Stack.a", "Stack.b"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if res.Nodes != 3 {
		t.Errorf("Nodes = %d, want 3", res.Nodes)
	}

	again, err := r.Select(ctx, []byte(doc), "JSON", []string{" time=2"})
	if err != nil {
		t.Fatal(err)
	}
	if !again.Cached {
		t.Error("second Select should hit the cache")
	}
	if !bytes.Equal(again.Data, res.Data) {
		t.Error("cached data differs")
	}
	if again.Nodes != res.Nodes {
		t.Errorf("cached Nodes = %d, want %d", again.Nodes, res.Nodes)
	}

	want := []string{"miss query", "load", "select time=2", "set query", "hit query"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}
}

func TestRunnerSelectDropsEmptiedBranch(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Select(context.Background(), []byte(doc), "json", []string{"time=1"})
	if err != nil {
		t.Fatal(err)
	}
	c := res.Node.(*view.Composite)
	if c.Len() != 1 || c.Keys()[0].String() != "Stack.a" {
		t.Errorf("keys = %v, want [Stack.a]", c.Keys())
	}
}

func TestRunnerSelectErrors(t *testing.T) {
	newRecorder(t)
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	if _, err := r.Select(ctx, []byte(doc), "json", []string{"time"}); !errors.Is(err, errors.ErrCodeInvalidQuery) {
		t.Errorf("bad expression error = %v, want INVALID_QUERY", err)
	}
	if _, err := r.Select(ctx, []byte(doc), "yaml", nil); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}
	if _, err := r.Select(ctx, []byte(`{"kind":`), "json", nil); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad document error = %v, want INVALID_FORMAT", err)
	}
	if _, err := r.Select(ctx, []byte(doc), "json", []string{"time=9"}); !errors.Is(err, errors.ErrCodeSelectionEmpty) {
		t.Errorf("empty selection error = %v, want SELECTION_EMPTY", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Select(canceled, []byte(doc), "json", nil); err != context.Canceled && !strings.Contains(err.Error(), "canceled") {
		t.Errorf("canceled error = %v, want context.Canceled", err)
	}
}

func TestRunnerSelectWithoutQuery(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Select(context.Background(), []byte(doc), "json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Nodes != 6 {
		t.Errorf("Nodes = %d, want 6", res.Nodes)
	}
}

func TestRunnerLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	r := NewRunner(nil, nil, logger)
	if _, err := r.Select(context.Background(), []byte(doc), "json", []string{"time=2"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"loaded document", "selected", "time=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRunnerRenderDOT(t *testing.T) {
	rec := newRecorder(t)
	r := newFileRunner(t)
	ctx := context.Background()

	out, cached, err := r.Render(ctx, []byte(doc), "json", []string{"time=2"}, "DOT", nodelink.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if cached {
		t.Error("first Render should not be cached")
	}
	if !strings.Contains(string(out), `label="Stack.b"`) {
		t.Errorf("unexpected DOT:\n%s", out)
	}

	again, cached, err := r.Render(ctx, []byte(doc), "json", []string{"time=2"}, "dot", nodelink.Options{})
	if err != nil || !cached || !bytes.Equal(again, out) {
		t.Errorf("second Render = cached %v, err %v; want identical cached output", cached, err)
	}

	want := []string{"miss render", "miss query", "load", "select time=2", "set query", "render dot", "set render", "hit render"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := r.Render(ctx, []byte(doc), "json", nil, "gif", nodelink.Options{}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Render(gif) error = %v, want UNSUPPORTED", err)
	}
}

func TestCount(t *testing.T) {
	if Count(nil) != 0 {
		t.Error("Count(nil) should be 0")
	}
	e := view.MustElement(view.Identity{}, nil)
	root, _ := view.Overlay(e, e, e)
	if got := Count(root); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
}
