package renderer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorewood/lunchlady/internal/git"
	"github.com/gorewood/lunchlady/internal/output"
)

const branch = "version/0.2"

// makeOrigin creates a repository with one commit on branch.
func makeOrigin(t *testing.T) string {
	t.Helper()
	if !git.Available() {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	gitIn(t, dir, "init", "--quiet")
	gitIn(t, dir, "checkout", "--quiet", "-b", branch)
	commitFile(t, dir, "index.html", "<h1>v1</h1>")
	return dir
}

func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	args = append([]string{"-c", "user.name=Test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
	out, err := git.Run(context.Background(), dir, args...)
	if err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
	return out
}

func commitFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	gitIn(t, dir, "add", name)
	gitIn(t, dir, "commit", "--quiet", "-m", "update "+name)
}

func TestFetchOrUpdate_ClonesThenUpdates(t *testing.T) {
	origin := makeOrigin(t)
	dir := filepath.Join(t.TempDir(), "renderer")
	ctx := context.Background()
	rec := &output.Recorder{}

	res, err := FetchOrUpdate(ctx, dir, origin, branch, rec)
	if err != nil {
		t.Fatalf("first FetchOrUpdate: %v", err)
	}
	if !res.Cloned || res.Head != gitIn(t, origin, "rev-parse", "HEAD") {
		t.Errorf("first result = %+v", res)
	}

	commitFile(t, origin, "about.html", "<p>about</p>")
	res, err = FetchOrUpdate(ctx, dir, origin, branch, rec)
	if err != nil {
		t.Fatalf("second FetchOrUpdate: %v", err)
	}
	if res.Cloned {
		t.Error("existing checkout was cloned again")
	}
	if want := gitIn(t, origin, "rev-parse", "HEAD"); res.Head != want {
		t.Errorf("Head = %s, want %s", res.Head, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "about.html")); err != nil {
		t.Errorf("update did not bring in the new file: %v", err)
	}
	if len(rec.Infos) == 0 {
		t.Error("no progress reported")
	}
}

func TestFetchOrUpdate_EmptyDirectoryIsCloned(t *testing.T) {
	origin := makeOrigin(t)
	dir := t.TempDir()

	res, err := FetchOrUpdate(context.Background(), dir, origin, branch, output.Discard)
	if err != nil {
		t.Fatalf("FetchOrUpdate: %v", err)
	}
	if !res.Cloned {
		t.Error("empty directory was not cloned into")
	}
}

func TestFetchOrUpdate_RefusesForeignDirectory(t *testing.T) {
	origin := makeOrigin(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := FetchOrUpdate(context.Background(), dir, origin, branch, output.Discard)
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != output.ExitUserError {
		t.Errorf("err = %v, want a user error", err)
	}
}
