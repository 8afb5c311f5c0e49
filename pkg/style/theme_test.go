package style

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/csvnet/csvnet/pkg/errors"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTheme(t *testing.T) {
	path := writeTheme(t, `
name = "ocean"
default_edge_color = "gray"

[node_colors]
"0" = "#1f6f8b"
"1" = "#e15759"

[edge_colors]
E1 = "#99a8b2"
`)

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if theme.Name != "ocean" {
		t.Errorf("Name = %s, want ocean", theme.Name)
	}
	if theme.NodeColors["0"] != "#1f6f8b" {
		t.Errorf("NodeColors[0] = %s, want #1f6f8b", theme.NodeColors["0"])
	}
	if theme.DefaultEdgeColor != "gray" {
		t.Errorf("DefaultEdgeColor = %s, want gray", theme.DefaultEdgeColor)
	}
	if theme.DefaultNodeColor != "" {
		t.Errorf("DefaultNodeColor = %s, want empty (hard-fail policy)", theme.DefaultNodeColor)
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	_, err := LoadTheme(filepath.Join(t.TempDir(), "missing.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Fatalf("LoadTheme error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadThemeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"MalformedTOML", "node_colors = [broken"},
		{"BadColor", "[node_colors]\n\"0\" = \"#nothex\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, tt.content)
			_, err := LoadTheme(path)
			if !apperrors.Is(err, apperrors.ErrCodeInvalidTheme) {
				t.Fatalf("LoadTheme error = %v, want INVALID_THEME", err)
			}
		})
	}
}

func TestLoadThemeEmptyTablesUsable(t *testing.T) {
	path := writeTheme(t, `name = "bare"`)

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if theme.NodeColors == nil || theme.EdgeColors == nil {
		t.Error("expected empty lookup tables, not nil maps")
	}
}
