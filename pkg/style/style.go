// Package style maps table columns to the visual attributes consumed by the
// renderers.
//
// The mapping is a fixed lookup: a node's category selects its fill color and
// an edge's type selects its stroke color. Descriptions and details become
// hover tooltips verbatim. Mapping is pure and deterministic; the same record
// and theme always produce the same attributes.
//
// A value absent from the lookup tables is a hard MAPPING_ERROR unless the
// theme declares an explicit default color. There is no silent fallback.
package style

import (
	"github.com/csvnet/csvnet/pkg/errors"
	"github.com/csvnet/csvnet/pkg/graph"
	"github.com/csvnet/csvnet/pkg/table"
)

// Theme holds the fixed lookup tables translating category and type values
// into colors. Empty default colors mean unknown values fail hard.
type Theme struct {
	Name string `toml:"name"`

	// NodeColors maps a node category to its fill color.
	NodeColors map[string]string `toml:"node_colors"`

	// EdgeColors maps an edge type to its stroke color.
	EdgeColors map[string]string `toml:"edge_colors"`

	// DefaultNodeColor, when set, is applied to categories missing from
	// NodeColors instead of failing.
	DefaultNodeColor string `toml:"default_node_color"`

	// DefaultEdgeColor, when set, is applied to types missing from
	// EdgeColors instead of failing.
	DefaultEdgeColor string `toml:"default_edge_color"`
}

// Default returns the built-in theme covering the documented category and
// type sets (categories "0"/"1", types "E1"/"E2"). No default colors are set,
// so values outside those sets fail with a mapping error.
func Default() Theme {
	return Theme{
		Name: "default",
		NodeColors: map[string]string{
			"0": "#4e79a7",
			"1": "#e15759",
		},
		EdgeColors: map[string]string{
			"E1": "#59a14f",
			"E2": "#f28e2b",
		},
	}
}

// Validate checks that every color in the theme is a usable hex code or CSS
// color keyword.
func (t Theme) Validate() error {
	for category, color := range t.NodeColors {
		if err := errors.ValidateColor(color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "node color for category %q", category)
		}
	}
	for typ, color := range t.EdgeColors {
		if err := errors.ValidateColor(color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "edge color for type %q", typ)
		}
	}
	if t.DefaultNodeColor != "" {
		if err := errors.ValidateColor(t.DefaultNodeColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "default node color")
		}
	}
	if t.DefaultEdgeColor != "" {
		if err := errors.ValidateColor(t.DefaultEdgeColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "default edge color")
		}
	}
	return nil
}

// nodeColor resolves the fill color for a category.
func (t Theme) nodeColor(category string) (string, error) {
	if color, ok := t.NodeColors[category]; ok {
		return color, nil
	}
	if t.DefaultNodeColor != "" {
		return t.DefaultNodeColor, nil
	}
	return "", errors.New(errors.ErrCodeMapping, "no color defined for node category %q", category)
}

// edgeColor resolves the stroke color for an edge type.
func (t Theme) edgeColor(typ string) (string, error) {
	if color, ok := t.EdgeColors[typ]; ok {
		return color, nil
	}
	if t.DefaultEdgeColor != "" {
		return t.DefaultEdgeColor, nil
	}
	return "", errors.New(errors.ErrCodeMapping, "no color defined for edge type %q", typ)
}

// MapNode derives the visual attributes for one node row. The node ID doubles
// as the renderer key and display label; the description becomes the tooltip.
func (t Theme) MapNode(row table.NodeRow) (graph.Node, error) {
	color, err := t.nodeColor(row.Category)
	if err != nil {
		return graph.Node{}, errors.Wrap(errors.ErrCodeMapping, err, "node %q", row.ID)
	}
	return graph.Node{
		ID:          row.ID,
		Category:    row.Category,
		Description: row.Description,
		Color:       color,
	}, nil
}

// MapEdge derives the visual attributes for one edge row. The details text
// becomes the tooltip.
func (t Theme) MapEdge(row table.EdgeRow) (graph.Edge, error) {
	color, err := t.edgeColor(row.Type)
	if err != nil {
		return graph.Edge{}, errors.Wrap(errors.ErrCodeMapping, err, "edge %s-%s", row.From, row.To)
	}
	return graph.Edge{
		From:    row.From,
		To:      row.To,
		Type:    row.Type,
		Details: row.Details,
		Color:   color,
	}, nil
}
