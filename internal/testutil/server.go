package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tendant/content-model/pkg/contentmodel"
	"github.com/tendant/content-model/pkg/contentmodel/api"
)

// MenuManifest declares a menu type with a static list and a computed
// selection, plus an item type that inherits from its parent.
const MenuManifest = `types:
  - id: menu
    attrs:
      - name: items
        type: array
        default: [1, 2, 3]
      - name: selected
        from: items.0
  - id: item
    attrs:
      - name: label
        type: string
        default: untitled
`

// WriteManifest writes contents to a temporary manifest file and returns its path.
func WriteManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

// SetupTestServer serves the API for reg under /api/v1. The server is closed
// when the test finishes.
func SetupTestServer(t *testing.T, reg *contentmodel.Registry) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Mount("/api/v1", api.NewHandler(reg).Routes())
	return NewServer(t, r)
}

// NewServer wraps handler in an httptest server closed at test cleanup.
func NewServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}
