// Package filex contains small filesystem helpers shared by the server
// (uploads directory) and the client (local database location).
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and any missing parents) under base and returns its
// full path. An empty base means the current working directory. Calling it
// on an existing directory is a no-op.
func EnsureDir(base, dir string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = cwd
	}

	full := filepath.Join(base, dir)

	if err := os.MkdirAll(full, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", full, err)
	}

	return full, nil
}
