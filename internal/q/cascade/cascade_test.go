package cascade

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile writes contents to name inside a new temp dir and returns its path.
func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))
	return p
}

type paletteConfig struct {
	Added    string
	Removed  string
	Modified string
}

type testConfig struct {
	Theme      string
	LineHeight int     `json:"line_height"`
	Similarity float64 `cascade:"similarity"`
	Sync       bool
	Tags       []string
	Palette    struct {
		Dark  paletteConfig
		Light *paletteConfig
	}
}

func TestCascadeBasics(t *testing.T) {
	yamlPath := writeFile(t, "config.yaml", `
theme: light
line_height: 18
palette:
  dark:
    added: "#0f0"
  light:
    removed: "#c00"
tags: [a, b]
`)
	jsonPath := writeFile(t, ".splitdiff.json", `{"theme": "dark", "similarity": 0.25, "palette": {"dark": {"removed": "#f00"}}}`)

	t.Setenv("TEST_CASCADE_LINE_HEIGHT", "22")
	t.Setenv("TEST_CASCADE_SYNC", "true")
	t.Setenv("TEST_CASCADE_THEME", "")

	var cfg testConfig
	l := New().
		WithDefaults(map[string]any{
			"theme":                  "dark",
			"line_height":            20,
			"similarity":             0.5,
			"palette.dark.added":     "green",
			"palette.dark.removed":   "red",
			"palette.dark.modified":  "blue",
			"palette.light.modified": "navy",
		}).
		WithYAMLFile(yamlPath).
		WithJSONFile(jsonPath).
		WithEnv(map[string]string{
			"line_height": "TEST_CASCADE_LINE_HEIGHT",
			"sync":        "TEST_CASCADE_SYNC",
			"theme":       "TEST_CASCADE_THEME",
		})
	require.NoError(t, l.StrictlyLoad(&cfg))

	assert.Equal(t, "dark", cfg.Theme) // JSON beats YAML; the empty env var is ignored
	assert.Equal(t, 22, cfg.LineHeight)
	assert.InDelta(t, 0.25, cfg.Similarity, 1e-9)
	assert.True(t, cfg.Sync)
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
	assert.Equal(t, paletteConfig{Added: "#0f0", Removed: "#f00", Modified: "blue"}, cfg.Palette.Dark)
	require.NotNil(t, cfg.Palette.Light)
	assert.Equal(t, paletteConfig{Removed: "#c00", Modified: "navy"}, *cfg.Palette.Light)

	assert.Equal(t, []string{"Defaults", "YAML File: " + yamlPath, "JSON File: " + jsonPath, "ENV"}, l.Applied())
}

func TestCascade_MissingFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	var cfg testConfig
	l := New().
		WithDefaults(map[string]any{"theme": "dark"}).
		WithYAMLFile(filepath.Join(dir, "nope.yaml")).
		WithJSONFile(filepath.Join(dir, "nope.json"))
	require.NoError(t, l.StrictlyLoad(&cfg))
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, []string{"Defaults"}, l.Applied())
}

func TestCascade_StrictlyLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		loader  func(t *testing.T) *Loader
		wantErr string
	}{
		{
			name: "bad json",
			loader: func(t *testing.T) *Loader {
				return New().WithJSONFile(writeFile(t, "bad.json", `{"theme": `))
			},
			wantErr: "parse json",
		},
		{
			name: "bad yaml",
			loader: func(t *testing.T) *Loader {
				return New().WithYAMLFile(writeFile(t, "bad.yaml", "theme: [unclosed"))
			},
			wantErr: "parse yaml",
		},
		{
			name: "top-level array",
			loader: func(t *testing.T) *Loader {
				return New().WithJSONFile(writeFile(t, "arr.json", `[1, 2]`))
			},
			wantErr: "top-level value must be an object",
		},
		{
			name: "uncoercible env",
			loader: func(t *testing.T) *Loader {
				t.Setenv("TEST_CASCADE_BAD_INT", "twenty")
				return New().WithEnv(map[string]string{"line_height": "TEST_CASCADE_BAD_INT"})
			},
			wantErr: `ENV: line_height: cannot parse int from "twenty"`,
		},
		{
			name: "scalar for struct",
			loader: func(t *testing.T) *Loader {
				return New().WithDefaults(map[string]any{"palette": "red"})
			},
			wantErr: "Defaults: palette: expected object for struct field",
		},
		{
			name: "key conflict",
			loader: func(t *testing.T) *Loader {
				return New().WithDefaults(map[string]any{"palette": "x", "palette.dark.added": "y"})
			},
			wantErr: "key conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg testConfig
			err := tt.loader(t).StrictlyLoad(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCascade_Required(t *testing.T) {
	type Config struct {
		Theme string `cascade:",required"`
		Inner struct {
			Width int `cascade:"w,required"`
		}
	}

	var cfg Config
	err := New().WithDefaults(map[string]any{"theme": "dark"}).StrictlyLoad(&cfg)
	require.EqualError(t, err, "missing required key: inner.w")

	err = New().WithDefaults(map[string]any{"theme": "dark", "inner.w": 3}).StrictlyLoad(&cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Inner.Width)
}

func TestCascade_BadDest(t *testing.T) {
	var cfg testConfig
	require.Error(t, New().StrictlyLoad(nil))
	require.Error(t, New().StrictlyLoad(cfg))
	n := 3
	require.Error(t, New().StrictlyLoad(&n))
}

func TestWithNearestJSONFile(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".splitdiff.json"), []byte(`{"theme": "root"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", ".splitdiff.json"), []byte("  \n"), 0o644))

	var cfg testConfig
	require.NoError(t, New().WithNearestJSONFile(".splitdiff.json", deep).StrictlyLoad(&cfg))
	assert.Equal(t, "root", cfg.Theme)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", ".splitdiff.json"), []byte(`{"theme": "b"}`), 0o644))
	file := filepath.Join(deep, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	require.NoError(t, New().WithNearestJSONFile(".splitdiff.json", file).StrictlyLoad(&cfg))
	assert.Equal(t, "b", cfg.Theme)

	assert.Panics(t, func() { New().WithNearestJSONFile(filepath.Join(root, ".splitdiff.json"), "") })
}
