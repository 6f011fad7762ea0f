// Package web holds the single-page app shell served for non-API paths.
package web

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed dist
var dist embed.FS

const IndexFile = "index.html"

// Embedded returns the built-in shell rooted at dist/.
func Embedded() fs.FS {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}
	return sub
}

// Root picks the directory to serve. A dir that exists and holds an
// index.html wins; otherwise the embedded shell is used. The bool reports
// whether dir was used.
func Root(dir string) (fs.FS, bool) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Embedded(), false
	}
	info, err := os.Stat(filepath.Join(dir, IndexFile))
	if err != nil || info.IsDir() {
		return Embedded(), false
	}
	return os.DirFS(dir), true
}

// Lookup resolves a request path to a regular file in root. It returns
// fs.ErrNotExist for directories, missing files and paths that try to
// escape the root.
func Lookup(root fs.FS, urlPath string) (string, error) {
	name := strings.TrimPrefix(urlPath, "/")
	if name == "" {
		return "", fs.ErrNotExist
	}
	if !fs.ValidPath(name) {
		return "", fs.ErrNotExist
	}
	info, err := fs.Stat(root, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fs.ErrNotExist
		}
		return "", err
	}
	if info.IsDir() {
		return "", fs.ErrNotExist
	}
	return name, nil
}
