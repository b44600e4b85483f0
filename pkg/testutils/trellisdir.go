package testutils

import (
	"os"
	"path/filepath"
	"testing"
)

// EnsureTestTrellisDirectory creates a .trellis directory with a pipelines
// subdirectory in the current working directory for tests that exercise the
// app layout.
func EnsureTestTrellisDirectory(t *testing.T) {
	err := os.MkdirAll(filepath.Join(".trellis", "pipelines"), 0766)
	if err != nil {
		t.Error(err)
	}
}

func CleanupTestTrellisDirectory() {
	os.RemoveAll(".trellis")
}
