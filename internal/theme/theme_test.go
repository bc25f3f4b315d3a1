package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/gorewood/lunchlady/internal/output"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_StylesheetsInThemeOrder(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "base", "css", "site.css"), "")
	writeTestFile(t, filepath.Join(root, "dark", "css", "overrides.css"), "")

	rec := &output.Recorder{}
	got := Resolve(root, []string{"base", "dark"}, rec)

	want := []string{"base/css/site.css", "dark/css/overrides.css"}
	if !slices.Equal(got.Stylesheets, want) {
		t.Errorf("Stylesheets = %v, want %v", got.Stylesheets, want)
	}
	if len(got.Fragments) != 0 {
		t.Errorf("Fragments = %v, want none", got.Fragments)
	}
	if len(rec.Warns) != 0 {
		t.Errorf("missing html folders should be silent, got %v", rec.Warns)
	}
}

func TestResolve_FragmentsGroupedByCategory(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "base", "html", "headers", "nav.html"), "")
	writeTestFile(t, filepath.Join(root, "base", "html", "footers", "deep", "copy.html"), "")
	writeTestFile(t, filepath.Join(root, "base", "html", "loose.html"), "")
	writeTestFile(t, filepath.Join(root, "base", "html", "headers", "notes.txt"), "")
	writeTestFile(t, filepath.Join(root, "dark", "html", "headers", "nav.html"), "")

	rec := &output.Recorder{}
	got := Resolve(root, []string{"base", "dark"}, rec)

	want := map[string][]string{
		"headers": {"base/html/headers/nav.html", "base/html/loose.html", "dark/html/headers/nav.html"},
		"footers": {"base/html/footers/deep/copy.html"},
	}
	if !reflect.DeepEqual(got.Fragments, want) {
		t.Errorf("Fragments = %v, want %v", got.Fragments, want)
	}
	if len(rec.Warns) != 1 || !strings.Contains(rec.Warns[0], "loose.html") {
		t.Errorf("Warns = %v, want one warning for the uncategorized fragment", rec.Warns)
	}
}

func TestResolve_UnreadableFolderDegrades(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "good", "css", "a.css"), "")
	// A file where the css folder should be is not a missing folder.
	writeTestFile(t, filepath.Join(root, "broken", "css"), "")

	rec := &output.Recorder{}
	got := Resolve(root, []string{"broken", "good", "absent"}, rec)

	if !slices.Equal(got.Stylesheets, []string{"good/css/a.css"}) {
		t.Errorf("Stylesheets = %v", got.Stylesheets)
	}
	if len(rec.Warns) != 1 || !strings.Contains(rec.Warns[0], `"broken"`) {
		t.Errorf("Warns = %v, want one warning naming the broken theme", rec.Warns)
	}
}

func TestList(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "dark", ManifestFile), "name: Dark Mode\ndescription: Light text on black\n")
	writeTestFile(t, filepath.Join(root, "base", "css", "site.css"), "")
	writeTestFile(t, filepath.Join(root, "odd", ManifestFile), "name: [unclosed\n")
	writeTestFile(t, filepath.Join(root, "notes.md"), "")

	rec := &output.Recorder{}
	got, err := List(root, rec)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []Theme{
		{Name: "base"},
		{Name: "dark", DisplayName: "Dark Mode", Description: "Light text on black"},
		{Name: "odd"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List = %+v, want %+v", got, want)
	}
	if len(rec.Warns) != 1 {
		t.Errorf("Warns = %v, want one for the bad manifest", rec.Warns)
	}

	if got[1].Label() != "Dark Mode (dark) - Light text on black" || got[0].Label() != "base" {
		t.Errorf("labels = %q, %q", got[1].Label(), got[0].Label())
	}
}

func TestList_MissingRoot(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "none"), output.Discard); err == nil {
		t.Error("List on a missing root should fail")
	}
}
