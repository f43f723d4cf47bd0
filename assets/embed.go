package assets

import (
	"embed"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

//go:embed palette.yaml
var assetsFS embed.FS

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// Palette maps sheet elements to colors.
type Palette map[string]color.RGBA

// Color returns the named color, or magenta when it is missing so gaps in the
// palette are obvious on screen.
func (p Palette) Color(name string) color.RGBA {
	if c, ok := p[name]; ok {
		return c
	}
	return colornames.Magenta
}

// LoadPalette decodes palette.yaml.
func LoadPalette() (Palette, error) {
	b, err := LoadFile("palette.yaml")
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode palette: %w", err)
	}
	pal := make(Palette, len(raw))
	for name, value := range raw {
		c, err := parseColor(value)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", name, err)
		}
		pal[name] = c
	}
	return pal, nil
}

func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
