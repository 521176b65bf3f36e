package kbfs

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DirectoryEntry is one file or directory below the root.
type DirectoryEntry struct {
	Name string `json:"name" description:"Base name"`
	Path string `json:"path" description:"Path relative to the root directory"`
	Type string `json:"type" description:"file or directory"`
}

// ListDirectory returns the immediate children of rel, sorted by name.
// Hidden entries are included.
func (s *Service) ListDirectory(ctx context.Context, rel string) ([]DirectoryEntry, error) {
	const op = "list_directory"
	t, err := s.dirTarget(op, rel)
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(t.abs)
	if err != nil {
		return nil, wrapIO(op, rel, err)
	}
	base := t.rel()
	out := make([]DirectoryEntry, 0, len(ents))
	for _, e := range ents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, DirectoryEntry{
			Name: e.Name(),
			Path: joinRel(base, e.Name()),
			Type: entryType(t.abs, e),
		})
	}
	return out, nil
}

// ListDirectoryRecursive walks rel depth-first in pre-order, children
// sorted by name. Names starting with "." are skipped along with everything
// beneath them.
func (s *Service) ListDirectoryRecursive(ctx context.Context, rel string) ([]DirectoryEntry, error) {
	const op = "list_directory_recursive"
	t, err := s.dirTarget(op, rel)
	if err != nil {
		return nil, err
	}
	w := &treeWalker{
		svc:    s,
		ctx:    ctx,
		op:     op,
		onPath: map[string]bool{t.abs: true},
		out:    []DirectoryEntry{},
	}
	if err := w.walk(t.abs, t.rel()); err != nil {
		return nil, err
	}
	return w.out, nil
}

type treeWalker struct {
	svc    *Service
	ctx    context.Context
	op     string
	onPath map[string]bool // canonical directories on the current walk path
	out    []DirectoryEntry
}

// walk lists dir, whose path relative to the root is relDir. Reported paths
// follow the names walked, so a symlinked directory keeps its link name.
func (w *treeWalker) walk(dir, relDir string) error {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return wrapIO(w.op, relDir, err)
	}
	for _, e := range ents {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		name := e.Name()
		if strings.HasPrefix(name, hiddenPrefix) {
			continue
		}
		relPath := joinRel(relDir, name)
		kind := entryType(dir, e)
		w.out = append(w.out, DirectoryEntry{Name: name, Path: relPath, Type: kind})
		if kind != TypeDirectory {
			continue
		}
		next := filepath.Join(dir, name)
		if e.Type()&fs.ModeSymlink != 0 {
			abs, _, err := w.svc.resolve(w.op, relPath)
			if err != nil {
				w.svc.log.Debug("not descending into symlinked directory",
					zap.String("path", relPath), zap.Error(err))
				continue
			}
			next = abs
		}
		if w.onPath[next] {
			continue
		}
		w.onPath[next] = true
		err := w.walk(next, relPath)
		delete(w.onPath, next)
		if err != nil {
			return err
		}
	}
	return nil
}

// entryType reports whether e is a directory, following symlinks. Anything
// that is not a directory, including a dangling link, is a file.
func entryType(dir string, e fs.DirEntry) string {
	if e.IsDir() {
		return TypeDirectory
	}
	if e.Type()&fs.ModeSymlink != 0 {
		if fi, err := os.Stat(filepath.Join(dir, e.Name())); err == nil && fi.IsDir() {
			return TypeDirectory
		}
	}
	return TypeFile
}

func joinRel(base, name string) string {
	if base == "" || base == "." {
		return name
	}
	return path.Join(base, name)
}
