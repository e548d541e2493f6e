package frontend

import (
	"path/filepath"
	"strings"
)

// contentTypes pins the types browsers are strict about. Source maps are
// always JSON.
var contentTypes = map[string]string{
	".js":   "application/javascript; charset=utf-8",
	".mjs":  "text/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".wasm": "application/wasm",
	".json": "application/json; charset=utf-8",
	".svg":  "image/svg+xml; charset=utf-8",
	".map":  "application/json; charset=utf-8",
}

// ContentType returns the explicit content type for path's extension. The
// second result is false when net/http should pick the type itself.
func ContentType(path string) (string, bool) {
	ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]
	return ct, ok
}
