// Package fsutil provides the file operations the content manager needs,
// with errors that separate a missing path from an I/O failure.
package fsutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
)

var (
	// ErrNotExist is returned when the path does not exist.
	ErrNotExist = errors.New("does not exist")
	// ErrIO is returned for any other filesystem failure.
	ErrIO = errors.New("i/o error")
)

// HTMLPattern matches HTML source files.
var HTMLPattern = regexp.MustCompile(`(?i)\.html?$`)

// CSSPattern matches stylesheets.
var CSSPattern = regexp.MustCompile(`(?i)\.css$`)

// classify wraps err with ErrNotExist or ErrIO.
func classify(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s %s: %w: %w", op, path, ErrNotExist, err)
	}
	return fmt.Errorf("%s %s: %w: %w", op, path, ErrIO, err)
}

// Exists reports whether path exists. Stat failures other than absence are
// returned as ErrIO.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, classify("stat", path, err)
}

// IsDir reports whether path exists and is a directory, following symlinks.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ReadFile reads the file at path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify("read", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories as needed.
// The write goes to a temp file in the same directory that is renamed over
// path, so readers never see a partial file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return classify("mkdir", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return classify("create temp file in", dir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return classify("write", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return classify("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return classify("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return classify("rename", path, err)
	}
	return nil
}

// ReadJSON decodes the JSON file at path into v. Decode failures are
// returned unwrapped by ErrNotExist and ErrIO.
func ReadJSON(path string, v any) error {
	data, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes v to path as indented JSON with a trailing newline.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return WriteFile(path, append(data, '\n'))
}

// IsEmptyDir reports whether dir is missing or an empty directory.
func IsEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		if !IsDir(dir) {
			return false, nil
		}
		return false, classify("list", dir, err)
	}
	return len(entries) == 0, nil
}

// Subdirectories returns the sorted names of the directories directly under
// root, including symlinks to directories.
func Subdirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, classify("list", root, err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() || (entry.Type()&fs.ModeSymlink != 0 && IsDir(filepath.Join(root, entry.Name()))) {
			dirs = append(dirs, entry.Name())
		}
	}
	slices.Sort(dirs)
	return dirs, nil
}

// ListFiles returns every file below root whose name matches pattern, as
// sorted slash-separated paths relative to root. Symlinked directories are
// followed once; hidden files and directories are skipped.
func ListFiles(root string, pattern *regexp.Regexp) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, classify("list", root, err)
	}

	var files []string
	visited := map[string]bool{}
	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		real, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return classify("resolve", dir, err)
		}
		if visited[real] {
			return nil
		}
		visited[real] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			return classify("list", dir, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if name[0] == '.' {
				continue
			}
			full := filepath.Join(dir, name)
			relPath := filepath.ToSlash(filepath.Join(rel, name))

			isDir := entry.IsDir()
			if entry.Type()&fs.ModeSymlink != 0 {
				info, err := os.Stat(full)
				if err != nil {
					// Dangling links are not content.
					continue
				}
				isDir = info.IsDir()
			}

			if isDir {
				if err := walk(full, relPath); err != nil {
					return err
				}
				continue
			}
			if pattern == nil || pattern.MatchString(name) {
				files = append(files, relPath)
			}
		}
		return nil
	}

	if err := walk(root, ""); err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// IsSymlink reports whether path is a symbolic link. A missing path is not
// an error.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, classify("lstat", path, err)
	}
	return info.Mode()&fs.ModeSymlink != 0, nil
}

// ReadLink returns the target of the symlink at path.
func ReadLink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", classify("readlink", path, err)
	}
	return target, nil
}

// Symlink creates link pointing at target, creating the link's parent
// directory when needed.
func Symlink(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		return classify("mkdir", filepath.Dir(link), err)
	}
	if err := os.Symlink(target, link); err != nil {
		return classify("symlink", link, err)
	}
	return nil
}

// Remove deletes the file or link at path.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return classify("remove", path, err)
	}
	return nil
}
