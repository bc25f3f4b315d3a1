// Package envfile applies lunchlady settings from dotenv files.
//
// Only variables carrying the package Prefix are applied, and a variable
// that is already set in the environment is never overwritten.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Prefix marks the variables this tool reads.
const Prefix = "LUNCHLADY_"

// Load applies the variables from each file in order and returns the names
// it set. Missing files are skipped. Earlier files win over later ones
// because a variable is only set once.
func Load(paths ...string) ([]string, error) {
	var applied []string
	for _, path := range paths {
		vars, err := read(path)
		if err != nil {
			return applied, err
		}
		for _, v := range vars {
			if _, set := os.LookupEnv(v.key); set {
				continue
			}
			if err := os.Setenv(v.key, v.value); err != nil {
				return applied, fmt.Errorf("setting %s from %s: %w", v.key, path, err)
			}
			applied = append(applied, v.key)
		}
	}
	return applied, nil
}

type variable struct {
	key, value string
}

func read(path string) ([]variable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	var vars []variable
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		v, ok := parseLine(scanner.Text())
		if ok && strings.HasPrefix(v.key, Prefix) {
			vars = append(vars, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

// parseLine reads KEY=VALUE with an optional export prefix. Quoted values
// are unquoted; unquoted values lose a trailing " #" comment.
func parseLine(line string) (variable, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return variable{}, false
	}
	key, value, found := strings.Cut(line, "=")
	if !found {
		return variable{}, false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" || strings.ContainsAny(key, " \t") {
		return variable{}, false
	}

	value = strings.TrimSpace(value)
	if n := len(value); n >= 2 && (value[0] == '"' || value[0] == '\'') && value[n-1] == value[0] {
		return variable{key: key, value: value[1 : n-1]}, true
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return variable{key: key, value: value}, true
}
