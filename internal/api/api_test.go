package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/nomadweb/internal/api"
	"github.com/shaharia-lab/nomadweb/internal/build"
	"github.com/shaharia-lab/nomadweb/internal/logger"
)

// testHarness bundles the router used by every test.
type testHarness struct {
	router chi.Router
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	srv := api.New(logger.Discard())

	r := chi.NewRouter()
	r.Route(api.Prefix, srv.Mount)

	return &testHarness{router: r}
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			h := newHarness(t)

			w := h.do(httptest.NewRequest(method, "/api/health", nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			if method == http.MethodGet {
				assert.JSONEq(t, `{"ok":true}`, w.Body.String())
			}
		})
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, build.Version, got["version"])
	assert.Equal(t, build.CommitSHA, got["commit"])
	assert.Equal(t, build.BuildDate, got["build_date"])
}

func TestUnmatchedRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown path", http.MethodGet, "/api/items"},
		{"nested unknown path", http.MethodGet, "/api/auth/me?x=1"},
		{"bare prefix", http.MethodGet, "/api"},
		{"wrong method on known path", http.MethodPost, "/api/health"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)

			w := h.do(httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"error":"API route not found"}`, w.Body.String())
		})
	}
}
