// Package api contains helpers shared by the versioned skipgrid document
// types: locating, reading and writing files.
package api

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/macropower/skipgrid/pkg/yaml"
)

const appName = "skipgrid"

// GetConfigPath returns the path of filename in the user's skipgrid config
// directory. $XDG_CONFIG_HOME is preferred, then ~/.config, then the
// temporary directory.
func GetConfigPath(filename string) string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appName, filename)
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", appName, filename)
	}

	tmpPath := filepath.Join(os.TempDir(), appName, filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("error", err),
	)

	return tmpPath
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", path)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: unknown file state", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// MarshalYAML serializes an object to YAML bytes.
func MarshalYAML(obj any) ([]byte, error) {
	b, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}

// FindFile walks up from start (a file or directory) to the filesystem
// root and returns the first existing file named one of names. It returns
// "" if there is none.
func FindFile(start string, names []string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("stat path: %w", err)
	}

	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}

		dir = parent
	}
}

// WriteFile writes data to path, creating parent directories.
//
// An existing regular file is left untouched unless force is set, in which
// case it is first renamed to "<name>.<unix nanos>.old". It returns whether
// data was written.
func WriteFile(path string, data []byte, force bool) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, fmt.Errorf("%s: path is a directory", path)
	case err == nil && !info.Mode().IsRegular():
		return false, fmt.Errorf("%s: unknown file state", path)
	case err == nil && !force:
		return false, nil
	case err == nil:
		backup := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())
		slog.Info("backing up existing file", slog.String("path", backup))

		if err := os.Rename(path, backup); err != nil {
			return false, fmt.Errorf("back up existing file: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("create directories: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return false, fmt.Errorf("write file: %w", err)
	}

	slog.Info("wrote file", slog.String("path", path))

	return true, nil
}
