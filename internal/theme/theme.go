// Package theme discovers themes and resolves the stylesheets and HTML
// fragments they contribute to a site.
//
// A theme is a directory under the theme root:
//
//	<root>/<theme>/theme.yaml      optional manifest
//	<root>/<theme>/css/**.css      stylesheets
//	<root>/<theme>/html/<category>/**.html
//
// All resolved paths are slash-separated and relative to the theme root.
package theme

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/output"
	"github.com/gorewood/lunchlady/internal/site"
)

// ManifestFile is the optional per-theme metadata file.
const ManifestFile = "theme.yaml"

// DefaultTheme is selected for new sites when it exists.
const DefaultTheme = "default"

// Theme describes one theme directory.
type Theme struct {
	// Name is the directory name, which is what the site stores.
	Name        string `yaml:"-" json:"name"`
	DisplayName string `yaml:"name" json:"displayName,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// Label is the text shown when choosing themes.
func (t Theme) Label() string {
	label := t.Name
	if t.DisplayName != "" && t.DisplayName != t.Name {
		label = fmt.Sprintf("%s (%s)", t.DisplayName, t.Name)
	}
	if t.Description != "" {
		label += " - " + t.Description
	}
	return label
}

// Result is the merged contribution of an ordered list of themes.
type Result struct {
	Fragments   map[string][]string
	Stylesheets []string
}

// List returns the themes found under root, sorted by name. A theme whose
// manifest cannot be parsed is still listed, and the problem is reported.
func List(root string, r output.Reporter) ([]Theme, error) {
	names, err := fsutil.Subdirectories(root)
	if err != nil {
		return nil, fmt.Errorf("listing themes in %s: %w", root, err)
	}

	themes := make([]Theme, 0, len(names))
	for _, name := range names {
		t, err := loadManifest(root, name)
		if err != nil {
			r.Warn("Ignoring %s for theme %q: %v", ManifestFile, name, err)
			t = Theme{}
		}
		t.Name = name
		themes = append(themes, t)
	}
	return themes, nil
}

func loadManifest(root, name string) (Theme, error) {
	var t Theme
	data, err := fsutil.ReadFile(filepath.Join(root, name, ManifestFile))
	if err != nil {
		if errors.Is(err, fsutil.ErrNotExist) {
			return t, nil
		}
		return t, err
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse: %w", err)
	}
	return t, nil
}

// Resolve collects stylesheets and fragments for names, in order. Later
// themes add to earlier ones; identical paths are kept. A missing css or
// html folder contributes nothing, and any other failure for a theme is
// reported and skipped.
func Resolve(root string, names []string, r output.Reporter) Result {
	res := Result{Fragments: map[string][]string{}, Stylesheets: []string{}}

	for _, name := range names {
		themeDir := filepath.Join(root, name)

		css, err := listUnder(filepath.Join(themeDir, "css"), fsutil.CSSPattern)
		if err != nil {
			r.Warn("Error getting css files for theme %q: %v", name, err)
		}
		for _, file := range css {
			res.Stylesheets = append(res.Stylesheets, path.Join(name, "css", file))
		}

		html, err := listUnder(filepath.Join(themeDir, "html"), fsutil.HTMLPattern)
		if err != nil {
			r.Warn("Error getting html files for theme %q: %v", name, err)
		}
		for _, file := range html {
			category, _, found := strings.Cut(file, "/")
			if !found || category == "" {
				r.Warn("No category folder for fragment %q in theme %q; using %q",
					file, name, site.DefaultFragmentCategory)
				category = site.DefaultFragmentCategory
			}
			res.Fragments[category] = append(res.Fragments[category], path.Join(name, "html", file))
		}
	}
	return res
}

// listUnder lists matching files below dir. A missing dir yields nothing.
func listUnder(dir string, pattern *regexp.Regexp) ([]string, error) {
	files, err := fsutil.ListFiles(dir, pattern)
	if errors.Is(err, fsutil.ErrNotExist) {
		return nil, nil
	}
	return files, err
}
