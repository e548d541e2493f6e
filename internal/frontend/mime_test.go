package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"/assets/index-abc.js", "application/javascript; charset=utf-8", true},
		{"/assets/INDEX.JS", "application/javascript; charset=utf-8", true},
		{"worker.mjs", "text/javascript; charset=utf-8", true},
		{"style.css", "text/css; charset=utf-8", true},
		{"engine.wasm", "application/wasm", true},
		{"manifest.json", "application/json; charset=utf-8", true},
		{"logo.SVG", "image/svg+xml; charset=utf-8", true},
		{"index-abc.js.map", "application/json; charset=utf-8", true},
		{"photo.png", "", false},
		{"index.html", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ContentType(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
