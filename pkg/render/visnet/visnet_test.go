package visnet

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/csvnet/csvnet/pkg/graph"
)

func smallGraph(t *testing.T) *graph.MultiGraph {
	t.Helper()
	g := graph.New()
	for _, n := range []graph.Node{
		{ID: "1", Category: "0", Description: "node 1", Color: "#4e79a7"},
		{ID: "2", Category: "1", Description: "node 2", Color: "#e15759"},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []graph.Edge{
		{From: "1", To: "2", Type: "E1", Details: "a", Color: "#59a14f"},
		{From: "1", To: "2", Type: "E2", Details: "b", Color: "#f28e2b"},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestBuildData(t *testing.T) {
	g := smallGraph(t)
	data := BuildData(g)

	if len(data.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(data.Nodes))
	}
	if len(data.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(data.Edges))
	}

	if data.Nodes[0].ID != "1" || data.Nodes[0].Label != "1" {
		t.Errorf("node 0 = %+v, want id and label 1", data.Nodes[0])
	}
	if data.Nodes[0].Title != "node 1" {
		t.Errorf("node 0 tooltip = %q, want description", data.Nodes[0].Title)
	}
	if data.Nodes[1].Color != "#e15759" {
		t.Errorf("node 1 color = %q, want #e15759", data.Nodes[1].Color)
	}

	// Parallel edges between the same pair stay distinct.
	if data.Edges[0].ID == data.Edges[1].ID {
		t.Errorf("parallel edges share ID %q", data.Edges[0].ID)
	}
	if data.Edges[0].ID != "e0" || data.Edges[1].ID != "e1" {
		t.Errorf("edge IDs = %s, %s, want e0, e1", data.Edges[0].ID, data.Edges[1].ID)
	}
	if data.Edges[1].Title != "b" || data.Edges[1].Color != "#f28e2b" {
		t.Errorf("edge 1 = %+v, want details b and E2 color", data.Edges[1])
	}
}

func TestBuildDataDeterministic(t *testing.T) {
	g := smallGraph(t)

	first := BuildData(g)
	second := BuildData(g)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildData not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, smallGraph(t), Options{Title: "my graph"}); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	page := buf.String()

	for _, want := range []string{
		"<title>my graph</title>",
		"vis-network",
		`"id":"e0"`,
		`"id":"e1"`,
		`"title":"node 1"`,
		`"color":"#59a14f"`,
		`"directed":false`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "__TITLE__") || strings.Contains(page, "__GRAPH_DATA__") {
		t.Error("page still contains template placeholders")
	}
}

func TestWriteHTMLDirected(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, smallGraph(t), Options{Directed: true}); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if !strings.Contains(buf.String(), `"directed":true`) {
		t.Error("directed option not embedded in page")
	}
}

func TestWriteHTMLEscapesTitle(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, graph.New(), Options{Title: "<script>&"}); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	page := buf.String()
	if !strings.Contains(page, "&lt;script&gt;&amp;") {
		t.Error("title not escaped")
	}
	if strings.Contains(page, "<title><script>") {
		t.Error("raw script tag leaked into title")
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.html")
	if err := Export(smallGraph(t), path, Options{}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.Contains(string(content), "csvnet graph") {
		t.Error("artifact missing default title")
	}

	// The temp file must be gone after the rename.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestExportUnwritableDir(t *testing.T) {
	err := Export(graph.New(), filepath.Join(t.TempDir(), "no", "such", "dir", "g.html"), Options{})
	if err == nil {
		t.Fatal("expected error for missing output directory")
	}
}
