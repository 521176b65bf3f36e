package kbfs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func mustWrite(t *testing.T, p string, b []byte, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, b, mode); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func mustMkdir(t *testing.T, p string) {
	t.Helper()
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
}

// makeSymlink skips the test where symlinks need extra privileges.
func makeSymlink(t *testing.T, target, link string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks not supported")
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
}

// newTree creates files under a fresh root. Keys ending in "/" are
// directories.
func newTree(t *testing.T, files map[string]string) (string, *Service) {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			mustMkdir(t, p)
			continue
		}
		mustWrite(t, p, []byte(content), 0o644)
	}
	return root, New(root)
}

func canonicalRoot(t *testing.T, root string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("eval root: %v", err)
	}
	return r
}
