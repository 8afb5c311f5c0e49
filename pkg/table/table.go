// Package table loads the node and edge tables that describe a multigraph.
//
// Both inputs are delimited text files with a header row. The default column
// names follow the documented schema (nodes: id, target, description; edges:
// src, dst, type, details), but every column can be renamed by the caller.
//
// Loading preserves input row order and field values verbatim. Errors carry
// structured codes from [pkg/errors] and name the offending file, column, or
// row so they can be surfaced directly to the user.
//
// [pkg/errors]: github.com/csvnet/csvnet/pkg/errors
package table

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	apperrors "github.com/csvnet/csvnet/pkg/errors"
)

// Default column names for the nodes table.
const (
	DefaultNodeIDColumn          = "id"
	DefaultNodeCategoryColumn    = "target"
	DefaultNodeDescriptionColumn = "description"
)

// Default column names for the edges table.
const (
	DefaultEdgeSourceColumn  = "src"
	DefaultEdgeTargetColumn  = "dst"
	DefaultEdgeTypeColumn    = "type"
	DefaultEdgeDetailsColumn = "details"
)

// NodeRow is one row of the nodes table.
type NodeRow struct {
	ID          string // unique node key
	Category    string // enumerated label mapped to a fill color
	Description string // free text shown as a hover tooltip
}

// EdgeRow is one row of the edges table. Endpoints are unordered; the
// graph is undirected.
type EdgeRow struct {
	From    string // source node ID
	To      string // destination node ID
	Type    string // enumerated label mapped to an edge color
	Details string // free text shown as a hover tooltip
}

// NodeColumns names the columns read from the nodes table.
type NodeColumns struct {
	ID          string
	Category    string
	Description string
}

// EdgeColumns names the columns read from the edges table.
type EdgeColumns struct {
	From    string
	To      string
	Type    string
	Details string
}

// DefaultNodeColumns returns the documented nodes schema.
func DefaultNodeColumns() NodeColumns {
	return NodeColumns{
		ID:          DefaultNodeIDColumn,
		Category:    DefaultNodeCategoryColumn,
		Description: DefaultNodeDescriptionColumn,
	}
}

// DefaultEdgeColumns returns the documented edges schema.
func DefaultEdgeColumns() EdgeColumns {
	return EdgeColumns{
		From:    DefaultEdgeSourceColumn,
		To:      DefaultEdgeTargetColumn,
		Type:    DefaultEdgeTypeColumn,
		Details: DefaultEdgeDetailsColumn,
	}
}

// Validate checks that all column names are usable.
func (c NodeColumns) Validate() error {
	for _, name := range []string{c.ID, c.Category, c.Description} {
		if err := apperrors.ValidateColumnName(name); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that all column names are usable.
func (c EdgeColumns) Validate() error {
	for _, name := range []string{c.From, c.To, c.Type, c.Details} {
		if err := apperrors.ValidateColumnName(name); err != nil {
			return err
		}
	}
	return nil
}

// ReadNodes decodes the nodes table from r.
//
// The first record is treated as the header. Row order is preserved and
// field values are returned verbatim. ReadNodes does not close r.
func ReadNodes(r io.Reader, cols NodeColumns) ([]NodeRow, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	records, header, err := readRecords(r, "nodes")
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(header, "nodes", cols.ID, cols.Category, cols.Description)
	if err != nil {
		return nil, err
	}

	rows := make([]NodeRow, 0, len(records))
	for i, rec := range records {
		id := rec[idx[cols.ID]]
		if id == "" {
			return nil, apperrors.New(apperrors.ErrCodeParse, "nodes row %d: empty %q value", i+2, cols.ID)
		}
		rows = append(rows, NodeRow{
			ID:          id,
			Category:    rec[idx[cols.Category]],
			Description: rec[idx[cols.Description]],
		})
	}
	return rows, nil
}

// ReadEdges decodes the edges table from r.
//
// The first record is treated as the header. Row order is preserved and
// field values are returned verbatim. ReadEdges does not close r.
func ReadEdges(r io.Reader, cols EdgeColumns) ([]EdgeRow, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	records, header, err := readRecords(r, "edges")
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(header, "edges", cols.From, cols.To, cols.Type, cols.Details)
	if err != nil {
		return nil, err
	}

	rows := make([]EdgeRow, 0, len(records))
	for i, rec := range records {
		from := rec[idx[cols.From]]
		to := rec[idx[cols.To]]
		if from == "" || to == "" {
			return nil, apperrors.New(apperrors.ErrCodeParse, "edges row %d: empty endpoint value", i+2)
		}
		rows = append(rows, EdgeRow{
			From:    from,
			To:      to,
			Type:    rec[idx[cols.Type]],
			Details: rec[idx[cols.Details]],
		})
	}
	return rows, nil
}

// LoadNodes reads the nodes table from the file at path.
func LoadNodes(path string, cols NodeColumns) ([]NodeRow, error) {
	f, err := openTable(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadNodes(f, cols)
	if err != nil {
		return nil, wrapWithPath(err, path)
	}
	return rows, nil
}

// LoadEdges reads the edges table from the file at path.
func LoadEdges(path string, cols EdgeColumns) ([]EdgeRow, error) {
	f, err := openTable(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadEdges(f, cols)
	if err != nil {
		return nil, wrapWithPath(err, path)
	}
	return rows, nil
}

func openTable(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "input file not found: %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return f, nil
}

// wrapWithPath prefixes structured errors with the file path for context.
func wrapWithPath(err error, path string) error {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeParse
	}
	return apperrors.Wrap(code, err, "%s", path)
}

// readRecords reads all CSV records and splits off the header row.
func readRecords(r io.Reader, table string) ([][]string, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // length is validated per row against the header

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "malformed %s table", table)
	}
	if len(all) == 0 {
		return nil, nil, apperrors.New(apperrors.ErrCodeSchema, "%s table is empty (missing header row)", table)
	}

	header := all[0]
	if len(header) > 0 {
		// Strip a UTF-8 BOM from the first header cell.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := all[1:]
	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, nil, apperrors.New(apperrors.ErrCodeParse,
				"%s row %d: has %d fields, header has %d", table, i+2, len(rec), len(header))
		}
	}
	return records, header, nil
}

// columnIndex maps required column names to their header positions.
func columnIndex(header []string, table string, required ...string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := pos[name]; !ok {
			pos[name] = i
		}
	}

	idx := make(map[string]int, len(required))
	for _, col := range required {
		i, ok := pos[col]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeSchema, "%s table missing column %q", table, col)
		}
		idx[col] = i
	}
	return idx, nil
}
