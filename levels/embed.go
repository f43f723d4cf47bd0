package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.txt
var LevelsFS embed.FS

// Load reads and parses a level by identifier ("h", "1", "end", ...). A copy
// under levels/ on disk wins over the embedded file so levels can be edited
// while the game runs. Unreadable files are logged and produce the degenerate
// 1x1 layout; parse failures are returned.
func Load(name string) (*Layout, error) {
	data, err := read(name)
	if err != nil {
		log.Printf("levels: read %s: %v", name, err)
		return degenerateLayout(), nil
	}

	layout, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse level %q: %w", name, err)
	}
	for _, warn := range layout.Warnings {
		log.Printf("levels: %s: %v", name, warn)
	}
	return layout, nil
}

// Names lists the embedded level identifiers in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(out)
	return out
}

func read(name string) ([]byte, error) {
	clean := fileName(name)
	if clean == "" {
		return nil, fmt.Errorf("empty level name")
	}
	if data, err := os.ReadFile(filepath.Join("levels", clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(LevelsFS, clean)
}

func fileName(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "levels/")
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, ".txt") {
		s += ".txt"
	}
	return s
}
