// Package config locates, loads and saves the lunchlady configuration.
//
// The configuration is an explicit value: commands load it once and pass it
// to whatever needs paths or tunables. Nothing in this package is global
// mutable state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/slug"
)

// FileName is the configuration file inside Dir.
const FileName = "config.json"

// Defaults for a fresh configuration.
const (
	DefaultRemoteURL   = "https://github.com/slonermike/sloppy-joe.git"
	DefaultBranch      = "version/0.2"
	DefaultContentFile = "content.json"
)

// ErrNotConfigured is returned by Load when no configuration file exists.
var ErrNotConfigured = errors.New("lunchlady is not configured; run `lunchlady setup` first")

// Config holds the operator's paths and tunables.
type Config struct {
	// RendererDir is the local checkout of the site renderer.
	RendererDir string `json:"rendererDir"`
	// ContentRoot holds the HTML sources and the site document. Setup
	// makes it a link to HTMLSource when one is given.
	ContentRoot string `json:"contentRoot"`
	ThemeRoot   string `json:"themeRoot"`
	HTMLSource  string `json:"htmlSource,omitempty"`
	ContentFile string `json:"contentFile"`

	RemoteURL    string `json:"remoteUrl"`
	Branch       string `json:"branch"`
	MaxTagLength int    `json:"maxTagLength"`
}

// Dir returns the configuration directory, the first of:
//   - $LUNCHLADY_CONFIG_HOME
//   - $XDG_CONFIG_HOME/lunchlady
//   - %AppData%/lunchlady on Windows
//   - ~/.config/lunchlady
func Dir() string {
	if dir := os.Getenv("LUNCHLADY_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lunchlady")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "lunchlady")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lunchlady")
}

// Path returns the default configuration file path.
func Path() string {
	return filepath.Join(Dir(), FileName)
}

// Default returns a configuration with the renderer checked out inside the
// configuration directory.
func Default() *Config {
	c := &Config{
		RendererDir:  filepath.Join(Dir(), "sloppy-joe"),
		ContentFile:  DefaultContentFile,
		RemoteURL:    DefaultRemoteURL,
		Branch:       DefaultBranch,
		MaxTagLength: slug.DefaultMaxTagLength,
	}
	c.fill()
	return c
}

// SetRendererDir moves the renderer checkout. Content and theme roots that
// were derived from the old checkout follow it; roots set explicitly stay.
func (c *Config) SetRendererDir(dir string) {
	if c.RendererDir != "" {
		if c.ContentRoot == filepath.Join(c.RendererDir, "public", "content") {
			c.ContentRoot = ""
		}
		if c.ThemeRoot == filepath.Join(c.RendererDir, "public", "themes") {
			c.ThemeRoot = ""
		}
	}
	c.RendererDir = dir
	c.fill()
}

// fill derives unset fields from the others.
func (c *Config) fill() {
	if c.ContentRoot == "" && c.RendererDir != "" {
		c.ContentRoot = filepath.Join(c.RendererDir, "public", "content")
	}
	if c.ThemeRoot == "" && c.RendererDir != "" {
		c.ThemeRoot = filepath.Join(c.RendererDir, "public", "themes")
	}
	if c.ContentFile == "" {
		c.ContentFile = DefaultContentFile
	}
	if c.RemoteURL == "" {
		c.RemoteURL = DefaultRemoteURL
	}
	if c.Branch == "" {
		c.Branch = DefaultBranch
	}
	if c.MaxTagLength <= 0 {
		c.MaxTagLength = slug.DefaultMaxTagLength
	}
}

// Load reads the configuration at path. Fields missing from the file are
// derived or defaulted.
func Load(path string) (*Config, error) {
	var c Config
	if err := fsutil.ReadJSON(path, &c); err != nil {
		if errors.Is(err, fsutil.ErrNotExist) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	c.fill()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := fsutil.WriteJSON(path, c); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// Validate checks that every required value is present.
func (c *Config) Validate() error {
	var missing []string
	for name, v := range map[string]string{
		"rendererDir": c.RendererDir,
		"contentRoot": c.ContentRoot,
		"themeRoot":   c.ThemeRoot,
		"contentFile": c.ContentFile,
		"remoteUrl":   c.RemoteURL,
		"branch":      c.Branch,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	if c.MaxTagLength <= 0 {
		return fmt.Errorf("maxTagLength must be positive, got %d", c.MaxTagLength)
	}
	return nil
}

// DocumentPath returns the path of the site document.
func (c *Config) DocumentPath() string {
	return filepath.Join(c.ContentRoot, c.ContentFile)
}

// CleanPath normalizes a directory typed by the operator: surrounding space
// is trimmed, a leading ~ expands to the home directory and the result is
// cleaned. An empty input stays empty.
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return filepath.Clean(p)
}
