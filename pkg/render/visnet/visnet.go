// Package visnet renders a multigraph as a self-contained interactive HTML
// page built on the vis-network browser library.
//
// The page embeds the complete node and edge data as JSON, loads vis-network
// from its CDN bundle, and runs a physics-based force layout with pan, zoom,
// drag, and hover tooltips. No server process is needed to view the output.
//
// Parallel edges between the same endpoint pair are emitted with distinct
// edge IDs and curved smoothing so the browser keeps them visually separate.
package visnet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/csvnet/csvnet/pkg/errors"
	"github.com/csvnet/csvnet/pkg/graph"
)

// Options configures the HTML page.
type Options struct {
	// Title is the page title. Defaults to "csvnet graph".
	Title string

	// Directed draws arrowheads from source to destination. The default is
	// an undirected rendering.
	Directed bool

	// Height is the CSS height of the network canvas. Defaults to "100vh".
	Height string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "csvnet graph"
	}
	if o.Height == "" {
		o.Height = "100vh"
	}
	return o
}

// visNode is the vis-network node schema.
type visNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title,omitempty"`
	Color string `json:"color,omitempty"`
}

// visEdge is the vis-network edge schema. Distinct IDs keep parallel edges
// from collapsing into one.
type visEdge struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
	Title string `json:"title,omitempty"`
	Color string `json:"color,omitempty"`
}

type visData struct {
	Nodes []visNode `json:"nodes"`
	Edges []visEdge `json:"edges"`
}

// networkOptions is the subset of vis-network options the page configures.
type networkOptions struct {
	Directed bool `json:"directed"`
}

// BuildData converts a multigraph to the vis-network dataset. Nodes and edges
// keep their input order; edge IDs are assigned by position so output is
// deterministic.
func BuildData(g *graph.MultiGraph) visData {
	data := visData{
		Nodes: make([]visNode, 0, g.NodeCount()),
		Edges: make([]visEdge, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		data.Nodes = append(data.Nodes, visNode{
			ID:    n.ID,
			Label: n.ID,
			Title: n.Description,
			Color: n.Color,
		})
	}

	for i, e := range g.Edges() {
		data.Edges = append(data.Edges, visEdge{
			ID:    fmt.Sprintf("e%d", i),
			From:  e.From,
			To:    e.To,
			Label: e.Type,
			Title: e.Details,
			Color: e.Color,
		})
	}

	return data
}

// WriteHTML renders the graph as an HTML page and writes it to w.
func WriteHTML(w io.Writer, g *graph.MultiGraph, opts Options) error {
	opts = opts.withDefaults()

	dataJSON, err := json.Marshal(BuildData(g))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeRender, err, "marshal graph data")
	}
	optsJSON, err := json.Marshal(networkOptions{Directed: opts.Directed})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeRender, err, "marshal network options")
	}

	page := htmlPage
	page = strings.Replace(page, "__TITLE__", htmlEscape(opts.Title), -1)
	page = strings.Replace(page, "__HEIGHT__", opts.Height, 1)
	page = strings.Replace(page, "/*__GRAPH_DATA__*/null", string(dataJSON), 1)
	page = strings.Replace(page, "/*__PAGE_OPTIONS__*/null", string(optsJSON), 1)

	if _, err := io.WriteString(w, page); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeRender, err, "write page")
	}
	return nil
}

// Export writes the HTML page to path. The write goes through a temp file in
// the target directory followed by a rename, so a failed run never leaves a
// partial artifact behind.
func Export(g *graph.MultiGraph, path string, opts Options) error {
	if err := apperrors.ValidateOutputPath(path); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()[:8]))

	f, err := os.Create(tmp)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeUnwritableOutput, err, "create %s", path)
	}

	if err := WriteHTML(f, g, opts); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return apperrors.Wrap(apperrors.ErrCodeUnwritableOutput, err, "close %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperrors.Wrap(apperrors.ErrCodeUnwritableOutput, err, "rename to %s", path)
	}
	return nil
}

// htmlEscape escapes the characters that matter inside the title element.
func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
