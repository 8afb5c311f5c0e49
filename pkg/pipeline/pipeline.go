// Package pipeline implements the load → map → render pipeline for csvnet.
//
// # Architecture
//
// The pipeline is a linear batch flow with no branching states:
//
//  1. Load: read the node and edge tables from delimited text files
//  2. Build: map rows to visual attributes and assemble the multigraph,
//     enforcing referential integrity before any rendering happens
//  3. Render: produce artifacts in the requested formats
//
// Either every stage succeeds and a complete artifact set is returned, or
// the first unrecovered error aborts the run. There is no partial output
// and nothing is retried.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    NodesPath: "nodes.csv",
//	    EdgesPath: "edges.csv",
//	    Formats:   []string{pipeline.FormatHTML},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts[pipeline.FormatHTML]
package pipeline

import (
	"strings"

	"github.com/charmbracelet/log"

	apperrors "github.com/csvnet/csvnet/pkg/errors"
	"github.com/csvnet/csvnet/pkg/style"
	"github.com/csvnet/csvnet/pkg/table"
)

// Format constants for output artifacts.
const (
	FormatHTML = "html"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// DefaultTitle is the page title used when none is given.
const DefaultTitle = "csvnet graph"

// Options configures one pipeline run.
type Options struct {
	// NodesPath and EdgesPath locate the input tables.
	NodesPath string
	EdgesPath string

	// NodeColumns and EdgeColumns rename the table columns. Zero values
	// fall back to the documented schema.
	NodeColumns table.NodeColumns
	EdgeColumns table.EdgeColumns

	// Theme holds the attribute lookup tables. Nil uses the built-in theme.
	Theme *style.Theme

	// Formats lists the artifacts to produce. Empty defaults to html.
	Formats []string

	// Title is the HTML page title.
	Title string

	// Directed renders arrowheads instead of plain undirected edges.
	Directed bool

	// Logger receives progress output. Nil uses the package default.
	Logger *log.Logger
}

// ValidateAndSetDefaults fills zero values and rejects unusable options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.NodesPath == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "nodes file path is required")
	}
	if o.EdgesPath == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "edges file path is required")
	}

	if o.NodeColumns == (table.NodeColumns{}) {
		o.NodeColumns = table.DefaultNodeColumns()
	}
	if o.EdgeColumns == (table.EdgeColumns{}) {
		o.EdgeColumns = table.DefaultEdgeColumns()
	}

	if o.Theme == nil {
		t := style.Default()
		o.Theme = &t
	}
	if err := o.Theme.Validate(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}

// ValidateFormats checks that every requested format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return apperrors.New(apperrors.ErrCodeInvalidFormat,
				"unsupported format %q (valid: html, dot, svg, png)", f)
		}
	}
	return nil
}

// ParseFormats parses a comma-separated format string into a slice.
func ParseFormats(s string) []string {
	if s == "" {
		return []string{FormatHTML}
	}
	return strings.Split(s, ",")
}
