package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/csvnet/csvnet/pkg/errors"
	"github.com/csvnet/csvnet/pkg/pipeline"
	"github.com/csvnet/csvnet/pkg/style"
	"github.com/csvnet/csvnet/pkg/table"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file path (or base path for multiple formats)
	formatsStr string // comma-separated output formats
	themePath  string // optional TOML theme file
	title      string // HTML page title
	directed   bool   // draw arrowheads
	noCache    bool   // disable artifact caching

	// column name overrides
	nodeID, nodeCategory, nodeDescription   string
	edgeSrc, edgeDst, edgeType, edgeDetails string
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <nodes.csv> <edges.csv>",
		Short: "Render the node/edge tables as an interactive HTML network",
		Long: `Render the node/edge tables as an interactive HTML network.

The nodes table needs columns id, target, and description; the edges table
needs src, dst, type, and details (all renameable via flags). Node categories
and edge types are mapped to colors through the theme; descriptions and
details become hover tooltips.

The HTML output is a single self-contained page with a physics-based layout
(pan, zoom, drag, hover). Additional formats (dot, svg, png) are rendered
through Graphviz.

Results are cached locally so re-rendering unchanged inputs is instant.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): html (default), dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.themePath, "theme", "", "TOML theme file with category/type color tables")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title")
	cmd.Flags().BoolVar(&opts.directed, "directed", false, "draw edges with arrowheads")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVar(&opts.nodeID, "node-id", table.DefaultNodeIDColumn, "nodes table: ID column")
	cmd.Flags().StringVar(&opts.nodeCategory, "node-category", table.DefaultNodeCategoryColumn, "nodes table: category column")
	cmd.Flags().StringVar(&opts.nodeDescription, "node-description", table.DefaultNodeDescriptionColumn, "nodes table: description column")
	cmd.Flags().StringVar(&opts.edgeSrc, "edge-src", table.DefaultEdgeSourceColumn, "edges table: source column")
	cmd.Flags().StringVar(&opts.edgeDst, "edge-dst", table.DefaultEdgeTargetColumn, "edges table: destination column")
	cmd.Flags().StringVar(&opts.edgeType, "edge-type", table.DefaultEdgeTypeColumn, "edges table: type column")
	cmd.Flags().StringVar(&opts.edgeDetails, "edge-details", table.DefaultEdgeDetailsColumn, "edges table: details column")

	return cmd
}

// runRender executes the pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, nodesPath, edgesPath string, opts renderOpts) error {
	popts, err := buildPipelineOptions(nodesPath, edgesPath, opts)
	if err != nil {
		return err
	}
	popts.Logger = c.Logger

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering network...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, popts.Formats, nodesPath, opts.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered network visualization")
	printStats(result.NodeCount, result.EdgeCount, result.CacheHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// buildPipelineOptions translates CLI flags into pipeline options.
func buildPipelineOptions(nodesPath, edgesPath string, opts renderOpts) (pipeline.Options, error) {
	popts := pipeline.Options{
		NodesPath: nodesPath,
		EdgesPath: edgesPath,
		NodeColumns: table.NodeColumns{
			ID:          opts.nodeID,
			Category:    opts.nodeCategory,
			Description: opts.nodeDescription,
		},
		EdgeColumns: table.EdgeColumns{
			From:    opts.edgeSrc,
			To:      opts.edgeDst,
			Type:    opts.edgeType,
			Details: opts.edgeDetails,
		},
		Title:    opts.title,
		Directed: opts.directed,
		Formats:  pipeline.ParseFormats(opts.formatsStr),
	}

	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return pipeline.Options{}, err
	}

	if opts.themePath != "" {
		theme, err := style.LoadTheme(opts.themePath)
		if err != nil {
			return pipeline.Options{}, err
		}
		popts.Theme = &theme
	}

	return popts, nil
}

// writeArtifacts writes each artifact next to the requested output path.
// With a single format the output path is used as-is; with several, the
// extension is swapped per format. Writes go through a temp file + rename
// so failures never leave a partial artifact.
func writeArtifacts(artifacts map[string][]byte, formats []string, nodesPath, output string) ([]string, error) {
	base := output
	if base == "" {
		base = strings.TrimSuffix(nodesPath, filepath.Ext(nodesPath)) + "." + formats[0]
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base
		if len(formats) > 1 {
			path = strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
		}
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeArtifact(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeUnwritableOutput, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperrors.Wrap(apperrors.ErrCodeUnwritableOutput, err, "rename to %s", path)
	}
	return nil
}
