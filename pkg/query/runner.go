package query

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewstack/pkg/cache"
	"github.com/matzehuels/viewstack/pkg/errors"
	vio "github.com/matzehuels/viewstack/pkg/io"
	"github.com/matzehuels/viewstack/pkg/observability"
	"github.com/matzehuels/viewstack/pkg/render/nodelink"
	"github.com/matzehuels/viewstack/pkg/view"
)

// DefaultTTL is how long query and render results stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Runner decodes documents, selects from them and renders them, caching
// the encoded results. It holds no per-call state, so one Runner can serve
// concurrent callers.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses DefaultKeyer and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: DefaultTTL}
}

// Result is the outcome of a selection.
type Result struct {
	Node   view.Node // selected tree
	Data   []byte    // Node encoded as JSON
	Nodes  int       // number of nodes in Node
	Cached bool      // served from cache
}

// Load decodes a document of the given format.
func (r *Runner) Load(ctx context.Context, doc []byte, format string) (view.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, format, len(doc))
	start := time.Now()

	n, err := vio.Unmarshal(doc, format)
	hooks.OnLoadComplete(ctx, format, Count(n), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	r.Logger.Debug("loaded document", "format", format, "bytes", len(doc), "nodes", Count(n),
		"duration", time.Since(start))
	return n, nil
}

// Select decodes doc, applies the expressions with view.DeepSelect and
// returns the result encoded as JSON. Results are cached under the content
// hash of doc and the expressions. Invalid expressions fail before any
// decoding with ErrCodeInvalidQuery; an emptied tree fails with
// ErrCodeSelectionEmpty.
func (r *Runner) Select(ctx context.Context, doc []byte, format string, exprs []string) (*Result, error) {
	q, err := Parse(exprs)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateFormat(format); err != nil {
		return nil, err
	}

	key := r.Keyer.QueryKey(cache.Hash(doc), exprs)
	if data, ok := r.cached(ctx, "query", key); ok {
		if n, err := vio.Unmarshal(data, vio.FormatJSON); err == nil {
			r.Logger.Debug("query cache hit", "query", q)
			return &Result{Node: n, Data: data, Nodes: Count(n), Cached: true}, nil
		}
		_ = r.Cache.Delete(ctx, key)
	}

	root, err := r.Load(ctx, doc, format)
	if err != nil {
		return nil, err
	}
	n, err := r.apply(ctx, root, q)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := vio.Marshal(n, vio.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	r.store(ctx, "query", key, data)
	return &Result{Node: n, Data: data, Nodes: Count(n)}, nil
}

// Apply runs q against an already loaded tree, with hooks and logging.
func (r *Runner) Apply(ctx context.Context, root view.Node, exprs []string) (view.Node, error) {
	q, err := Parse(exprs)
	if err != nil {
		return nil, err
	}
	return r.apply(ctx, root, q)
}

func (r *Runner) apply(ctx context.Context, root view.Node, q view.Query) (view.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(q) == 0 {
		return root, nil
	}
	hooks := observability.Pipeline()
	qs := q.String()
	hooks.OnSelectStart(ctx, qs)
	start := time.Now()

	n, err := view.DeepSelect(root, q)
	hooks.OnSelectComplete(ctx, qs, Count(n), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", qs, err)
	}
	r.Logger.Info("selected", "query", qs, "nodes", Count(n), "duration", time.Since(start))
	return n, nil
}

// Render selects from doc and draws the result as "dot", "svg", "pdf" or
// "png". Output is cached like Select.
func (r *Runner) Render(ctx context.Context, doc []byte, format string, exprs []string, out string, opts nodelink.Options) ([]byte, bool, error) {
	out = strings.ToLower(out)
	switch out {
	case "dot", "svg", "pdf", "png":
	default:
		return nil, false, errors.New(errors.ErrCodeUnsupported, "unsupported render format %q (want dot, svg, pdf or png)", out)
	}

	key := r.Keyer.RenderKey(cache.Hash(doc), exprs, cache.RenderKeyOpts{Format: out, Detailed: opts.Detailed})
	if data, ok := r.cached(ctx, "render", key); ok {
		return data, true, nil
	}

	res, err := r.Select(ctx, doc, format, exprs)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, out)
	start := time.Now()
	data, err := draw(res.Node, out, opts)
	hooks.OnRenderComplete(ctx, out, time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", out, err)
	}
	r.Logger.Info("rendered", "format", out, "bytes", len(data), "duration", time.Since(start))

	r.store(ctx, "render", key, data)
	return data, false, nil
}

func draw(n view.Node, out string, opts nodelink.Options) ([]byte, error) {
	dot := nodelink.ToDOT(n, opts)
	switch out {
	case "svg":
		return nodelink.RenderSVG(dot)
	case "pdf":
		return nodelink.RenderPDF(dot)
	case "png":
		return nodelink.RenderPNG(dot, 2)
	}
	return []byte(dot), nil
}

// cached reads key, reporting hits and misses. Cache failures are logged
// and treated as misses.
func (r *Runner) cached(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		ok = false
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Count returns the number of nodes in the tree rooted at n; 0 for nil.
func Count(n view.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	_ = view.Walk(n, func([]view.Step, view.Node) error {
		count++
		return nil
	})
	return count
}
