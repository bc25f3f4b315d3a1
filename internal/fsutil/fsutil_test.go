package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
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

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "index.html"), "")
	writeTestFile(t, filepath.Join(root, "posts", "My Post.html"), "")
	writeTestFile(t, filepath.Join(root, "posts", "old.HTM"), "")
	writeTestFile(t, filepath.Join(root, "posts", "notes.txt"), "")
	writeTestFile(t, filepath.Join(root, ".git", "hidden.html"), "")

	got, err := ListFiles(root, HTMLPattern)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{"index.html", "posts/My Post.html", "posts/old.HTM"}
	if !slices.Equal(got, want) {
		t.Errorf("ListFiles = %v, want %v", got, want)
	}
}

func TestListFiles_FollowsSymlinkedDirectories(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeTestFile(t, filepath.Join(outside, "essay.html"), "")
	if err := os.Symlink(outside, filepath.Join(root, "html")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	// A loop back to the root must not recurse forever.
	if err := os.Symlink(root, filepath.Join(outside, "loop")); err != nil {
		t.Fatal(err)
	}

	got, err := ListFiles(root, HTMLPattern)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if !slices.Equal(got, []string{"html/essay.html"}) {
		t.Errorf("ListFiles = %v", got)
	}
}

func TestListFiles_MissingRoot(t *testing.T) {
	_, err := ListFiles(filepath.Join(t.TempDir(), "nope"), nil)
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestSubdirectories(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"dark", "base"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeTestFile(t, filepath.Join(root, "README.md"), "")

	got, err := Subdirectories(root)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"base", "dark"}) {
		t.Errorf("Subdirectories = %v", got)
	}
}

func TestWriteFile_ReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "doc.json")

	if err := WriteFile(path, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("two")); err != nil {
		t.Fatal(err)
	}
	data, err := ReadFile(path)
	if err != nil || string(data) != "two" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory holds %d files, want 1", len(entries))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.json")
	in := map[string][]string{"a": {"x", "y"}}
	if err := WriteJSON(path, in); err != nil {
		t.Fatal(err)
	}
	var out map[string][]string
	if err := ReadJSON(path, &out); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out["a"], in["a"]) {
		t.Errorf("round trip = %v", out)
	}

	if err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &out); !errors.Is(err, ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
}

func TestSymlinkHelpers(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "sub", "link")
	if err := Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if ok, err := IsSymlink(link); err != nil || !ok {
		t.Errorf("IsSymlink(link) = %v, %v", ok, err)
	}
	if ok, err := IsSymlink(target); err != nil || ok {
		t.Errorf("IsSymlink(dir) = %v, %v", ok, err)
	}
	if ok, err := IsSymlink(filepath.Join(dir, "missing")); err != nil || ok {
		t.Errorf("IsSymlink(missing) = %v, %v", ok, err)
	}
	if got, err := ReadLink(link); err != nil || got != target {
		t.Errorf("ReadLink = %q, %v", got, err)
	}
	if ok, _ := Exists(link); !ok {
		t.Error("Exists(link) = false")
	}
}

func TestIsEmptyDir(t *testing.T) {
	root := t.TempDir()
	full := filepath.Join(root, "full")
	writeTestFile(t, filepath.Join(full, "a.html"), "")
	file := filepath.Join(root, "file.txt")
	writeTestFile(t, file, "x")
	empty := filepath.Join(root, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"missing", filepath.Join(root, "missing"), true},
		{"empty", empty, true},
		{"with files", full, false},
		{"regular file", file, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsEmptyDir(tt.path)
			if err != nil {
				t.Fatalf("IsEmptyDir: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsEmptyDir(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
