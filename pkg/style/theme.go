package style

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/csvnet/csvnet/pkg/errors"
)

// LoadTheme reads a theme from a TOML file.
//
// The file format mirrors the Theme struct:
//
//	name = "midnight"
//	default_node_color = "#bab0ac"   # optional: enables fallback styling
//
//	[node_colors]
//	"0" = "#4e79a7"
//	"1" = "#e15759"
//
//	[edge_colors]
//	E1 = "#59a14f"
//	E2 = "#f28e2b"
//
// Lookup tables in the file replace the built-in ones entirely; they are not
// merged. The loaded theme is validated before it is returned.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme file not found: %s", path)
		}
		return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open theme %s", path)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parse theme %s", path)
	}

	if t.NodeColors == nil {
		t.NodeColors = map[string]string{}
	}
	if t.EdgeColors == nil {
		t.EdgeColors = map[string]string{}
	}

	if err := t.Validate(); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme %s", path)
	}
	return t, nil
}
