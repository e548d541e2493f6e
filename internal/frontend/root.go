// Package frontend holds the pieces of the SPA server that do not depend on
// HTTP routing: locating the built frontend on disk, picking content types
// for its assets and rendering the public runtime environment into the
// entry document.
package frontend

import (
	"os"
	"path/filepath"
)

// IndexFile is the SPA entry document served for client-side routes.
const IndexFile = "index.html"

// fallbackOffsets are probed, in order, relative to the base directory when
// no override is configured or the override does not exist.
var fallbackOffsets = []string{
	filepath.Join("..", "frontend", "dist"),
	filepath.Join("..", "frontend", "build"),
	filepath.Join("..", "Frontend"),
	filepath.Join("..", "frontend"),
	filepath.Join("..", "..", "Frontend"),
	filepath.Join("..", "..", "frontend"),
	filepath.Join("..", "..", "frontend", "dist"),
	filepath.Join("..", "..", "frontend", "build"),
}

// Candidates returns the ordered list of directories to probe. A non-empty
// override is made absolute and placed first.
func Candidates(override, baseDir string) []string {
	out := make([]string, 0, len(fallbackOffsets)+1)
	if override != "" {
		if abs, err := filepath.Abs(override); err == nil {
			out = append(out, abs)
		} else {
			out = append(out, filepath.Clean(override))
		}
	}
	for _, off := range fallbackOffsets {
		out = append(out, filepath.Join(baseDir, off))
	}
	return out
}

// ResolveRoot returns the first candidate that exists and is a directory.
func ResolveRoot(candidates []string) (string, bool) {
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Root is the frontend directory resolved at startup. The zero value means
// no frontend was found.
type Root struct {
	dir string
}

// NewRoot wraps an already-resolved directory. An empty dir yields an
// unavailable Root.
func NewRoot(dir string) Root {
	return Root{dir: dir}
}

// Resolve probes candidates once and returns the result as a Root.
func Resolve(candidates []string) Root {
	dir, _ := ResolveRoot(candidates)
	return Root{dir: dir}
}

// Available reports whether a frontend directory was resolved.
func (r Root) Available() bool { return r.dir != "" }

// Dir returns the resolved directory, or "" when unavailable.
func (r Root) Dir() string { return r.dir }

// IndexPath returns the location of the entry document.
func (r Root) IndexPath() string {
	return filepath.Join(r.dir, IndexFile)
}
