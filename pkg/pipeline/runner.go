package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/csvnet/csvnet/pkg/cache"
	apperrors "github.com/csvnet/csvnet/pkg/errors"
	"github.com/csvnet/csvnet/pkg/graph"
	"github.com/csvnet/csvnet/pkg/render/nodelink"
	"github.com/csvnet/csvnet/pkg/render/visnet"
	"github.com/csvnet/csvnet/pkg/table"
)

// artifactTTL bounds how long cached artifacts are kept.
const artifactTTL = 7 * 24 * time.Hour

// Result holds the output of one pipeline run.
type Result struct {
	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	// RunID identifies this run in log output.
	RunID string

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool

	// NodeCount and EdgeCount describe the loaded graph.
	NodeCount int
	EdgeCount int
}

// Runner executes the pipeline with artifact caching. It is stateless apart
// from the cache and logger; one Runner can serve many runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses the package default.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete load → build → render pipeline.
//
// Artifacts are cached under a content hash of both input files plus the
// render-relevant options, so re-running with unchanged inputs skips the
// render stage entirely.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	runID := shortRunID()
	logger := opts.Logger.With("run_id", runID)

	nodesRaw, err := readInput(opts.NodesPath)
	if err != nil {
		return nil, err
	}
	edgesRaw, err := readInput(opts.EdgesPath)
	if err != nil {
		return nil, err
	}

	key := cache.Key("render",
		cache.Hash(nodesRaw), cache.Hash(edgesRaw),
		opts.NodeColumns, opts.EdgeColumns, opts.Theme,
		opts.Formats, opts.Title, opts.Directed)

	result := &Result{RunID: runID}

	g, err := r.build(nodesRaw, edgesRaw, opts, logger)
	if err != nil {
		return nil, err
	}
	result.NodeCount = g.NodeCount()
	result.EdgeCount = g.EdgeCount()

	if cached, ok := r.lookup(ctx, key); ok {
		logger.Debug("artifact cache hit", "key", key[:20])
		result.Artifacts = cached
		result.CacheHit = true
		return result, nil
	}

	start := time.Now()
	artifacts, err := r.render(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("rendered artifacts", "formats", opts.Formats, "elapsed", time.Since(start).Round(time.Millisecond))

	r.store(ctx, key, artifacts, logger)

	result.Artifacts = artifacts
	return result, nil
}

// build loads both tables and assembles the attributed multigraph.
//
// All nodes are added first, then edges. Edge endpoints are checked against
// the node set before attribute mapping, so a dangling reference is always
// reported as a referential error and no renderer ever sees the edge.
func (r *Runner) build(nodesRaw, edgesRaw []byte, opts Options, logger *log.Logger) (*graph.MultiGraph, error) {
	nodeRows, err := table.ReadNodes(bytes.NewReader(nodesRaw), opts.NodeColumns)
	if err != nil {
		return nil, wrapTable(err, opts.NodesPath)
	}
	edgeRows, err := table.ReadEdges(bytes.NewReader(edgesRaw), opts.EdgeColumns)
	if err != nil {
		return nil, wrapTable(err, opts.EdgesPath)
	}
	logger.Debug("loaded tables", "nodes", len(nodeRows), "edges", len(edgeRows))

	g := graph.New()
	for i, row := range nodeRows {
		n, err := opts.Theme.MapNode(row)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.GetCode(err), err, "%s row %d", opts.NodesPath, i+2)
		}
		if err := g.AddNode(n); err != nil {
			return nil, apperrors.Wrap(apperrors.GetCode(err), err, "%s row %d", opts.NodesPath, i+2)
		}
	}

	for i, row := range edgeRows {
		for _, endpoint := range []string{row.From, row.To} {
			if !g.HasNode(endpoint) {
				return nil, apperrors.New(apperrors.ErrCodeReferential,
					"%s row %d: edge references unknown node %q", opts.EdgesPath, i+2, endpoint)
			}
		}
		e, err := opts.Theme.MapEdge(row)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.GetCode(err), err, "%s row %d", opts.EdgesPath, i+2)
		}
		if err := g.AddEdge(e); err != nil {
			return nil, apperrors.Wrap(apperrors.GetCode(err), err, "%s row %d", opts.EdgesPath, i+2)
		}
	}

	return g, nil
}

// render produces every requested artifact.
func (r *Runner) render(ctx context.Context, g *graph.MultiGraph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	needDOT := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(g, nodelink.Options{Directed: opts.Directed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatHTML:
			var buf bytes.Buffer
			err = visnet.WriteHTML(&buf, g, visnet.Options{Title: opts.Title, Directed: opts.Directed})
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(needDOT())
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, needDOT())
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, needDOT())
		default:
			err = apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}

		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeRender, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// lookup fetches a cached artifact set. Any cache failure is treated as a
// miss; caching never fails a run.
func (r *Runner) lookup(ctx context.Context, key string) (map[string][]byte, bool) {
	raw, ok, err := r.Cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var artifacts map[string][]byte
	if err := json.Unmarshal(raw, &artifacts); err != nil {
		return nil, false
	}
	return artifacts, true
}

// store writes an artifact set to the cache, logging failures at debug level.
func (r *Runner) store(ctx context.Context, key string, artifacts map[string][]byte, logger *log.Logger) {
	raw, err := json.Marshal(artifacts)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, raw, artifactTTL); err != nil {
		logger.Debug("cache store failed", "err", err)
	}
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "input file not found: %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return data, nil
}

// wrapTable prefixes a table error with its file path unless the loader
// already did.
func wrapTable(err error, path string) error {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeParse
	}
	return apperrors.Wrap(code, err, "%s", path)
}

// shortRunID returns a compact run identifier for log correlation.
func shortRunID() string {
	return uuid.NewString()[:8]
}
