package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// Load reads a tuning file such as "tuning.yaml".
func Load(name string) ([]byte, error) {
	return read(strings.TrimPrefix(filepath.ToSlash(name), "prefabs/"))
}

// LoadScript reads a tengo script by bare name or by a path under prefabs/.
func LoadScript(name string) ([]byte, error) {
	return read(path.Join("scripts", path.Base(filepath.ToSlash(name))))
}

// read prefers a copy under prefabs/ on disk so edits apply without a rebuild.
func read(clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(PrefabsFS, clean)
}
