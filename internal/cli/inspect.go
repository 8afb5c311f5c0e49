package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/csvnet/csvnet/pkg/errors"
	"github.com/csvnet/csvnet/pkg/table"
)

// inspectCommand creates the inspect command for validating inputs without
// rendering anything.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		nodeCols = table.DefaultNodeColumns()
		edgeCols = table.DefaultEdgeColumns()
	)

	cmd := &cobra.Command{
		Use:   "inspect <nodes.csv> <edges.csv>",
		Short: "Load and validate the tables without rendering",
		Long: `Load and validate the tables without rendering.

The inspect command reads both tables, checks the schema and referential
integrity (every edge endpoint must exist in the nodes table), and prints a
summary of the graph: row counts, the category and type values present, and
how many parallel edge groups the multigraph contains.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], args[1], nodeCols, edgeCols)
		},
	}

	cmd.Flags().StringVar(&nodeCols.ID, "node-id", nodeCols.ID, "nodes table: ID column")
	cmd.Flags().StringVar(&nodeCols.Category, "node-category", nodeCols.Category, "nodes table: category column")
	cmd.Flags().StringVar(&nodeCols.Description, "node-description", nodeCols.Description, "nodes table: description column")
	cmd.Flags().StringVar(&edgeCols.From, "edge-src", edgeCols.From, "edges table: source column")
	cmd.Flags().StringVar(&edgeCols.To, "edge-dst", edgeCols.To, "edges table: destination column")
	cmd.Flags().StringVar(&edgeCols.Type, "edge-type", edgeCols.Type, "edges table: type column")
	cmd.Flags().StringVar(&edgeCols.Details, "edge-details", edgeCols.Details, "edges table: details column")

	return cmd
}

func runInspect(nodesPath, edgesPath string, nodeCols table.NodeColumns, edgeCols table.EdgeColumns) error {
	nodes, err := table.LoadNodes(nodesPath, nodeCols)
	if err != nil {
		return err
	}
	edges, err := table.LoadEdges(edgesPath, edgeCols)
	if err != nil {
		return err
	}

	ids := make(map[string]bool, len(nodes))
	categories := make(map[string]int)
	for _, n := range nodes {
		if ids[n.ID] {
			return apperrors.New(apperrors.ErrCodeDuplicateNode, "%s: duplicate node ID %q", nodesPath, n.ID)
		}
		ids[n.ID] = true
		categories[n.Category]++
	}

	types := make(map[string]int)
	pairs := make(map[string]int)
	connected := make(map[string]bool)
	for i, e := range edges {
		for _, endpoint := range []string{e.From, e.To} {
			if !ids[endpoint] {
				return apperrors.New(apperrors.ErrCodeReferential,
					"%s row %d: edge references unknown node %q", edgesPath, i+2, endpoint)
			}
			connected[endpoint] = true
		}
		types[e.Type]++
		pairs[pairKey(e.From, e.To)]++
	}

	parallel := 0
	for _, n := range pairs {
		if n > 1 {
			parallel++
		}
	}

	printSuccess("Inputs are valid")
	printKeyValue("Nodes", fmt.Sprintf("%d", len(nodes)))
	printKeyValue("Edges", fmt.Sprintf("%d", len(edges)))
	printKeyValue("Categories", countSummary(categories))
	printKeyValue("Edge types", countSummary(types))
	if parallel > 0 {
		printKeyValue("Multi-edges", fmt.Sprintf("%d endpoint pairs with parallel edges", parallel))
	}
	if isolated := len(nodes) - len(connected); isolated > 0 {
		printWarning("%d node(s) have no edges", isolated)
	}
	return nil
}

// pairKey builds an order-insensitive key for an endpoint pair.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// countSummary formats a value→count map as "a (2), b (1)" sorted by value.
func countSummary(counts map[string]int) string {
	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)

	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%s (%d)", v, counts[v]))
	}
	return strings.Join(parts, ", ")
}
