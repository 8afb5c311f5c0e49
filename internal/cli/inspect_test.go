package cli

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/csvnet/csvnet/pkg/errors"
	"github.com/csvnet/csvnet/pkg/table"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunInspect(t *testing.T) {
	tests := []struct {
		name     string
		nodes    string
		edges    string
		wantCode apperrors.Code
	}{
		{
			name:  "ValidInputs",
			nodes: "id,target,description\n1,0,node 1\n2,1,node 2\n",
			edges: "src,dst,type,details\n1,2,E1,a\n1,2,E2,b\n",
		},
		{
			name:  "IsolatedNodeIsNotAnError",
			nodes: "id,target,description\n1,0,a\n2,1,b\n3,0,c\n",
			edges: "src,dst,type,details\n1,2,E1,x\n",
		},
		{
			name:     "DuplicateNodeID",
			nodes:    "id,target,description\n1,0,a\n1,1,b\n",
			edges:    "src,dst,type,details\n",
			wantCode: apperrors.ErrCodeDuplicateNode,
		},
		{
			name:     "DanglingEdge",
			nodes:    "id,target,description\n1,0,a\n",
			edges:    "src,dst,type,details\n1,99,E1,x\n",
			wantCode: apperrors.ErrCodeReferential,
		},
		{
			name:     "BadNodeSchema",
			nodes:    "id,description\n1,a\n",
			edges:    "src,dst,type,details\n",
			wantCode: apperrors.ErrCodeSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			nodesPath := writeFile(t, dir, "nodes.csv", tt.nodes)
			edgesPath := writeFile(t, dir, "edges.csv", tt.edges)

			err := runInspect(nodesPath, edgesPath, table.DefaultNodeColumns(), table.DefaultEdgeColumns())
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("runInspect: %v", err)
				}
				return
			}
			if !apperrors.Is(err, tt.wantCode) {
				t.Errorf("runInspect error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestPairKey(t *testing.T) {
	if pairKey("a", "b") != pairKey("b", "a") {
		t.Error("pairKey should be order-insensitive")
	}
	if pairKey("a", "b") == pairKey("a", "c") {
		t.Error("different pairs should have different keys")
	}
	// Self-loops are a valid pair.
	if pairKey("x", "x") != pairKey("x", "x") {
		t.Error("self-loop key not stable")
	}
}

func TestCountSummary(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   string
	}{
		{"Empty", map[string]int{}, ""},
		{"Single", map[string]int{"E1": 3}, "E1 (3)"},
		{"SortedByValue", map[string]int{"b": 1, "a": 2}, "a (2), b (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countSummary(tt.counts); got != tt.want {
				t.Errorf("countSummary = %q, want %q", got, tt.want)
			}
		})
	}
}
