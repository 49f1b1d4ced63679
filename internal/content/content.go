// Package content manages the gallery and blog post directory trees.
// Each entry is a folder holding a meta.json descriptor; the folder path
// (<root>/<year>/<name>) is the source of truth for identity, and
// listing always overrides the descriptor's own year/name with it.
package content

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const metaFile = "meta.json"

var (
	ErrExists   = errors.New("content: already exists")
	ErrNotFound = errors.New("content: not found")
	ErrBadName  = errors.New("content: invalid identifier")
)

// validIdent rejects path components that could escape the content root
// or collide with internal files.
func validIdent(s string) bool {
	if s == "" || s == "." || s == ".." || s == metaFile {
		return false
	}
	if strings.ContainsAny(s, "/\\") {
		return false
	}
	return true
}

func readMeta(dir string, v any) error {
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeMeta(dir string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, metaFile), append(data, '\n'), 0o664)
}

// entryDirs lists <root>/<year>/<name> folder pairs, sorted by path.
func entryDirs(root string) ([][2]string, error) {
	years, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out [][2]string
	for _, y := range years {
		if !y.IsDir() {
			continue
		}
		names, err := os.ReadDir(filepath.Join(root, y.Name()))
		if err != nil {
			continue
		}
		for _, n := range names {
			if n.IsDir() {
				out = append(out, [2]string{y.Name(), n.Name()})
			}
		}
	}
	return out, nil
}
