package testing_util

import (
	"os"
	"path/filepath"
	"testing"
)

// MkdirTemp creates a scratch directory that is removed when the test finishes.
func MkdirTemp(t *testing.T, prefix string) string {
	t.Helper()

	out, err := os.MkdirTemp(os.TempDir(), prefix)
	if err != nil {
		t.Fatalf("failed to create temporary directory: %v", err)
	}

	if err := os.Chmod(out, 0o777); err != nil {
		t.Fatalf("failed to make temporary directory accessible: %s", err)
	}

	t.Cleanup(func() {
		_ = os.RemoveAll(out)
	})
	return out
}

// WriteFile writes content under dir and returns the resulting path.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write %q: %v", path, err)
	}
	return path
}
