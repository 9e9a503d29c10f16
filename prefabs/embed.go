package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// layered resolves a name against each file system in turn. The first
// readable copy wins; a miss reports the last layer's error.
type layered []fs.FS

func (l layered) ReadFile(name string) ([]byte, error) {
	err := error(&fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist})
	for _, fsys := range l {
		var data []byte
		if data, err = fs.ReadFile(fsys, name); err == nil {
			return data, nil
		}
	}
	return nil, err
}

// assets prefers an edited copy under ./prefabs so levels can be tuned
// without a rebuild. Lookups fall back to the copies compiled into the binary.
var assets = layered{os.DirFS("prefabs"), embedded}

// Load reads a YAML prefab by file name.
func Load(name string) ([]byte, error) {
	return readAsset(assets, cleanPrefabPath(name))
}

// LoadScript reads a tengo layout script by file name.
func LoadScript(name string) ([]byte, error) {
	return readAsset(assets, cleanScriptPath(name))
}

func readAsset(src layered, clean string) ([]byte, error) {
	if clean == "" || !fs.ValidPath(clean) {
		return nil, &fs.PathError{Op: "open", Path: clean, Err: fs.ErrInvalid}
	}
	return src.ReadFile(clean)
}

func cleanPrefabPath(name string) string {
	return trimAssetPrefix(name, "", "prefabs/")
}

func cleanScriptPath(name string) string {
	return trimAssetPrefix(name, "scripts/", "prefabs/scripts/", "prefabs/", "scripts/")
}

// trimAssetPrefix normalises name to a slash path, strips the first matching
// prefix and roots the rest under dir.
func trimAssetPrefix(name, dir string, prefixes ...string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			s = rest
			break
		}
	}
	return dir + s
}
