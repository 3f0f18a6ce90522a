package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/codalotl/splitdiff/internal/connector"
	"github.com/codalotl/splitdiff/internal/q/cascade"
	"github.com/codalotl/splitdiff/internal/simplelogger"
)

// Config is splitdiff's configuration loaded from a cascade of sources.
//
// NOTE: internal/q/cascade matches keys case-insensitively against the json tag (or field name). The json tags also shape `splitdiff config` output.
type Config struct {
	// Theme is "dark" or "light".
	Theme string `json:"theme"`

	// Connector surface metrics used by html, svg, blocks and hit. Defaults are 20, 8 and 48.
	LineHeight     float64 `json:"lineheight"`
	PaddingTop     float64 `json:"paddingtop"`
	ConnectorWidth float64 `json:"connectorwidth"`

	// SimilarityThreshold is the minimum similarity of a modified pair for character highlights. Defaults to 0.5.
	SimilarityThreshold float64 `json:"similaritythreshold"`

	TabWidth    int `json:"tabwidth"`
	GutterWidth int `json:"gutterwidth"` // terminal cells between the panes

	SyncScroll    bool `json:"syncscroll"`
	ShowConnector bool `json:"showconnector"`

	Palette Palettes `json:"palette"`
}

// Palettes holds the ribbon colors of both themes.
type Palettes struct {
	Dark  Palette `json:"dark"`
	Light Palette `json:"light"`
}

type Palette struct {
	Added    string `json:"added"`
	Removed  string `json:"removed"`
	Modified string `json:"modified"`
}

func (p Palette) static() connector.StaticPalette {
	return connector.StaticPalette{Added: p.Added, Removed: p.Removed, Modified: p.Modified}
}

func (c Config) metrics() connector.Metrics {
	return connector.Metrics{LineHeight: c.LineHeight, PaddingTop: c.PaddingTop, Width: c.ConnectorWidth}
}

// palette returns the ribbon palette of the configured theme.
func (c Config) palette() connector.StaticPalette {
	if c.Theme == "light" {
		return c.Palette.Light.static()
	}
	return c.Palette.Dark.static()
}

const (
	userConfigFile    = "splitdiff/config.yaml"
	projectConfigFile = ".splitdiff.json"
)

func defaultConfigMap() map[string]any {
	dark, light := connector.DarkPalette, connector.LightPalette
	return map[string]any{
		"theme":                  "dark",
		"lineheight":             connector.DefaultMetrics.LineHeight,
		"paddingtop":             connector.DefaultMetrics.PaddingTop,
		"connectorwidth":         connector.DefaultMetrics.Width,
		"similaritythreshold":    0.5,
		"tabwidth":               4,
		"gutterwidth":            9,
		"syncscroll":             false,
		"showconnector":          true,
		"palette.dark.added":     dark.Added,
		"palette.dark.removed":   dark.Removed,
		"palette.dark.modified":  dark.Modified,
		"palette.light.added":    light.Added,
		"palette.light.removed":  light.Removed,
		"palette.light.modified": light.Modified,
	}
}

// loadConfig reads, from lowest to highest precedence: defaults, the user config ($XDG_CONFIG_HOME/splitdiff/config.yaml), the nearest .splitdiff.json
// above the working directory, and SPLITDIFF_* environment variables. It returns the names of the sources that were read.
func loadConfig() (Config, []string, error) {
	loader := cascade.New().
		WithDefaults(defaultConfigMap()).
		WithYAMLFile(cascade.InUserConfigDirectory(filepath.FromSlash(userConfigFile))).
		WithNearestJSONFile(projectConfigFile, "").
		WithEnv(map[string]string{
			"theme":               "SPLITDIFF_THEME",
			"lineheight":          "SPLITDIFF_LINE_HEIGHT",
			"similaritythreshold": "SPLITDIFF_SIMILARITY",
		})

	var cfg Config
	if err := loader.StrictlyLoad(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, nil, err
	}
	simplelogger.Log("cli: config from %v", loader.Applied())
	return cfg, loader.Applied(), nil
}

func validateConfig(cfg Config) error {
	switch {
	case cfg.Theme != "dark" && cfg.Theme != "light":
		return fmt.Errorf("invalid configuration: theme must be dark or light (got %q)", cfg.Theme)
	case cfg.LineHeight <= 0:
		return fmt.Errorf("invalid configuration: lineheight must be > 0 (got %v)", cfg.LineHeight)
	case cfg.PaddingTop < 0:
		return fmt.Errorf("invalid configuration: paddingtop must be >= 0 (got %v)", cfg.PaddingTop)
	case cfg.ConnectorWidth <= 0:
		return fmt.Errorf("invalid configuration: connectorwidth must be > 0 (got %v)", cfg.ConnectorWidth)
	case cfg.SimilarityThreshold < 0 || cfg.SimilarityThreshold > 1:
		return fmt.Errorf("invalid configuration: similaritythreshold must be within [0, 1] (got %v)", cfg.SimilarityThreshold)
	case cfg.TabWidth < 1:
		return fmt.Errorf("invalid configuration: tabwidth must be >= 1 (got %d)", cfg.TabWidth)
	case cfg.GutterWidth < 0:
		return fmt.Errorf("invalid configuration: gutterwidth must be >= 0 (got %d)", cfg.GutterWidth)
	}
	if err := cfg.Palette.Dark.static().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: palette.dark: %w", err)
	}
	if err := cfg.Palette.Light.static().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: palette.light: %w", err)
	}
	return nil
}

func writeConfigJSON(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return nil
}
