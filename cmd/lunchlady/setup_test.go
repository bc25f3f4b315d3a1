package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/lunchlady/internal/config"
	"github.com/gorewood/lunchlady/internal/editor"
	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/git"
	"github.com/gorewood/lunchlady/internal/output"
	"github.com/gorewood/lunchlady/internal/store"
)

func TestLinkContent(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, content, source, elsewhere string)
		wantErr bool
		linked  bool
	}{
		{
			name:    "missing content folder",
			prepare: func(*testing.T, string, string, string) {},
			linked:  true,
		},
		{
			name: "empty content folder is replaced",
			prepare: func(t *testing.T, content, _, _ string) {
				if err := os.MkdirAll(content, 0o755); err != nil {
					t.Fatal(err)
				}
			},
			linked: true,
		},
		{
			name: "existing link to the source is kept",
			prepare: func(t *testing.T, content, source, _ string) {
				if err := fsutil.Symlink(source, content); err != nil {
					t.Fatal(err)
				}
			},
			linked: true,
		},
		{
			name: "link elsewhere is replaced",
			prepare: func(t *testing.T, content, _, elsewhere string) {
				if err := fsutil.Symlink(elsewhere, content); err != nil {
					t.Fatal(err)
				}
			},
			linked: true,
		},
		{
			name: "folder with files is refused",
			prepare: func(t *testing.T, content, _, _ string) {
				if err := os.MkdirAll(content, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(content, "mine.html"), nil, 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			source := filepath.Join(root, "html")
			elsewhere := filepath.Join(root, "other")
			for _, dir := range []string{source, elsewhere} {
				if err := os.Mkdir(dir, 0o755); err != nil {
					t.Fatal(err)
				}
			}
			cfg := &config.Config{ContentRoot: filepath.Join(root, "renderer", "public", "content"), HTMLSource: source}
			tt.prepare(t, cfg.ContentRoot, source, elsewhere)

			rec := &output.Recorder{}
			err := linkContent(cfg, rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("linkContent error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.linked {
				return
			}
			target, err := fsutil.ReadLink(cfg.ContentRoot)
			if err != nil || target != source {
				t.Errorf("content root links to %q (%v), want %q", target, err, source)
			}
			if len(rec.Infos) == 0 {
				t.Error("nothing reported")
			}
		})
	}
}

func TestLinkContent_NoSourceOrMissingSource(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{ContentRoot: filepath.Join(root, "content")}
	if err := linkContent(cfg, output.Discard); err != nil {
		t.Errorf("no source: %v", err)
	}
	if ok, _ := fsutil.IsSymlink(cfg.ContentRoot); ok {
		t.Error("linked without a source folder")
	}

	cfg.HTMLSource = filepath.Join(root, "missing")
	if err := linkContent(cfg, output.Discard); output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("missing source: err = %v, want a user error", err)
	}
}

func TestConfigureCommand(t *testing.T) {
	root := t.TempDir()
	t.Setenv("LUNCHLADY_CONFIG_HOME", root)
	path := filepath.Join(root, "config.json")
	rendererDir := filepath.Join(root, "renderer")
	source := filepath.Join(root, "html")
	if err := os.Mkdir(source, 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := executeCmd(t, rendererDir+"/\n"+source+"\n", "configure", "--config", path)
	if err != nil {
		t.Fatalf("configure failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Fixing directory formatting") {
		t.Errorf("trailing slash not reported as fixed: %q", out)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RendererDir != rendererDir || cfg.HTMLSource != source {
		t.Errorf("config = %+v", cfg)
	}
	if want := filepath.Join(rendererDir, "public", "content"); cfg.ContentRoot != want {
		t.Errorf("ContentRoot = %q, want %q", cfg.ContentRoot, want)
	}
	if target, err := fsutil.ReadLink(cfg.ContentRoot); err != nil || target != source {
		t.Errorf("content root links to %q (%v)", target, err)
	}

	// Blank answers keep the saved values; "-" clears the source folder.
	if _, err := executeCmd(t, "\n-\n", "configure", "--config", path); err != nil {
		t.Fatalf("second configure failed: %v", err)
	}
	if cfg, err = config.Load(path); err != nil {
		t.Fatal(err)
	}
	if cfg.RendererDir != rendererDir || cfg.HTMLSource != "" {
		t.Errorf("config after clearing = %+v", cfg)
	}
}

func TestSetupCommand(t *testing.T) {
	if !git.Available() {
		t.Skip("git not installed")
	}
	origin := t.TempDir()
	gitIn(t, origin, "init", "--quiet")
	gitIn(t, origin, "checkout", "--quiet", "-b", config.DefaultBranch)
	if err := os.WriteFile(filepath.Join(origin, "index.html"), []byte("<h1>renderer</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	gitIn(t, origin, "add", "index.html")
	gitIn(t, origin, "commit", "--quiet", "-m", "renderer")

	path, cfg := writeTestConfig(t)
	cfg.RemoteURL = origin
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	// keep renderer dir, no source folder, then the site title
	out, err := executeCmd(t, "\n-\nMy Site\n", "setup", "--config", path)
	if err != nil {
		t.Fatalf("setup failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(cfg.RendererDir, "index.html")); err != nil {
		t.Errorf("renderer not cloned: %v", err)
	}
	doc, err := store.Load(cfg.DocumentPath())
	if err != nil {
		t.Fatalf("site not created: %v", err)
	}
	if doc.Title != "My Site" || len(doc.Entries) != 1 {
		t.Errorf("site = %q with %d entries", doc.Title, len(doc.Entries))
	}
	if _, err := os.Stat(filepath.Join(cfg.ContentRoot, editor.WelcomeFile)); err != nil {
		t.Errorf("welcome article missing: %v", err)
	}

	// A second run updates the renderer and leaves the site alone.
	out, err = executeCmd(t, "\n-\n", "setup", "--config", path)
	if err != nil {
		t.Fatalf("second setup failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("output = %q", out)
	}
}

func gitIn(t *testing.T, dir string, args ...string) {
	t.Helper()
	args = append([]string{"-c", "user.name=Test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
	if _, err := git.Run(context.Background(), dir, args...); err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
}
