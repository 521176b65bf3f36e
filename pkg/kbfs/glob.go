package kbfs

import (
	"context"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// GlobFiles returns the files below the root matching pattern, sorted by
// path. When rel names a subdirectory the pattern is applied beneath it,
// unless the pattern starts with "/", which anchors it at the root instead.
// "*" stays within one path segment and "**" spans any number of segments.
func (s *Service) GlobFiles(ctx context.Context, pattern, rel string) ([]DirectoryEntry, error) {
	const op = "glob_files"
	t, err := s.dirTarget(op, rel)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = DefaultGlobPattern
	}

	start, prefix := t.root, ""
	switch {
	case strings.HasPrefix(pattern, "/"):
		pattern = strings.TrimLeft(pattern, "/")
	case t.rel() != ".":
		start, prefix = t.abs, t.rel()
		pattern = escapeMeta(prefix) + "/" + pattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, newError(KindPattern, op, rel, "bad glob "+pattern)
	}

	var (
		mu  sync.Mutex
		out []DirectoryEntry
	)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Debug("glob walk error", zap.String("path", p), zap.Error(err))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		sub := relTo(start, p)
		if sub == "." || d.IsDir() {
			return nil
		}
		display := joinRel(prefix, sub)
		ok, err := doublestar.Match(pattern, display)
		if err != nil || !ok {
			return nil
		}
		if !s.isContainedFile(op, display, d) {
			return nil
		}
		mu.Lock()
		out = append(out, DirectoryEntry{Name: d.Name(), Path: display, Type: TypeFile})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, wrapIO(op, rel, err)
	}
	slices.SortFunc(out, func(a, b DirectoryEntry) int {
		return comparePaths(a.Path, b.Path)
	})
	if out == nil {
		out = []DirectoryEntry{}
	}
	return out, nil
}

// isContainedFile reports whether the walked entry is a regular file. A
// symlink counts when its target is a regular file inside the root.
func (s *Service) isContainedFile(op, display string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	abs, _, err := s.resolve(op, display)
	if err != nil {
		return false
	}
	fi, err := os.Stat(abs)
	return err == nil && fi.Mode().IsRegular()
}

// comparePaths orders slash-separated paths segment by segment, so "a/x"
// sorts before "a-b/x".
func comparePaths(a, b string) int {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}

// escapeMeta quotes glob metacharacters in a literal path.
func escapeMeta(p string) string {
	var b strings.Builder
	for _, r := range p {
		if strings.ContainsRune(`\*?[]{}`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
