package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/content-model/pkg/contentmodel"
	"github.com/tendant/content-model/pkg/contentmodel/config"
)

const testManifest = `types:
  - id: menu
    attrs:
      - name: items
        type: array
        default: [1, 2, 3]
      - name: selected
        from: items.0
  - id: empty
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "ENVIRONMENT", "MANIFEST_PATH", "LOG_LEVEL", "LOG_FORMAT", "ENABLE_METRICS"} {
		t.Setenv(key, "")
	}
	t.Setenv("ENABLE_EVENT_LOGGING", "false")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGetCommand(t *testing.T) {
	clearEnv(t)
	manifest := writeManifest(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"static default", []string{"get", "menu", "items"}, "[1,2,3]"},
		{"computed from default", []string{"get", "menu", "selected"}, "1"},
		{"dot path", []string{"get", "menu", "items.2"}, "3"},
		{"prop overrides default", []string{"get", "menu", "selected", "--prop", "items=[9,8]"}, "9"},
		{"string prop", []string{"get", "menu", "title", "-p", "title=Lunch"}, `"Lunch"`},
		{"missing attribute", []string{"get", "menu", "nope"}, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--manifest", manifest}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestGetCommandUnknownType(t *testing.T) {
	clearEnv(t)

	_, err := run(t, "--manifest", writeManifest(t), "get", "nope", "items")
	require.Error(t, err)
	assert.ErrorIs(t, err, contentmodel.ErrTypeNotFound)
}

func TestGetCommandBadProp(t *testing.T) {
	clearEnv(t)

	_, err := run(t, "--manifest", writeManifest(t), "get", "menu", "items", "--prop", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestTypesCommand(t *testing.T) {
	clearEnv(t)

	out, err := run(t, "--manifest", writeManifest(t), "types")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "TYPE")
	assert.Regexp(t, `^empty\s+-`, lines[1])
	assert.Regexp(t, `^menu\s+items\s+static\s+array\s+\[1,2,3\]`, lines[2])
	assert.Regexp(t, `^menu\s+selected\s+computed\s+-\s+-`, lines[3])
}

func TestInvalidManifest(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types:\n  - id: a\n  - id: a\n"), 0o644))

	_, err := run(t, "--manifest", path, "types")
	require.Error(t, err)
	assert.ErrorIs(t, err, contentmodel.ErrInvalidManifest)
}

func TestManifestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MANIFEST_PATH", writeManifest(t))

	out, err := run(t, "get", "menu", "items.0")
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(out))
}

func TestParseProps(t *testing.T) {
	props, err := parseProps([]string{"n=3", "s=hello", "obj={\"a\":true}", "eq=a=b"})
	require.NoError(t, err)
	assert.Equal(t, float64(3), props["n"])
	assert.Equal(t, "hello", props["s"])
	assert.Equal(t, map[string]any{"a": true}, props["obj"])
	assert.Equal(t, "a=b", props["eq"])

	_, err = parseProps([]string{"=x"})
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	reg := contentmodel.New()
	reg.Get("menu").Attr("items", "array", []any{"a"})

	tests := []struct {
		name    string
		metrics bool
		path    string
		want    int
	}{
		{"api mounted", false, "/api/v1/healthz", http.StatusOK},
		{"types listed", false, "/api/v1/types/menu", http.StatusOK},
		{"metrics disabled", false, "/metrics", http.StatusNotFound},
		{"metrics enabled", true, "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Port: "0", LogLevel: "info", LogFormat: "text", EnableMetrics: tt.metrics}
			r := newRouter(cfg, reg)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
