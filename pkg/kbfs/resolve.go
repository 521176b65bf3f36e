package kbfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// target is a path that passed the resolver and the existence check.
type target struct {
	abs  string // canonical absolute path
	root string // canonical root at the time of the call
	info fs.FileInfo
}

// rel returns the target relative to the root, slash-separated.
func (t *target) rel() string {
	return relTo(t.root, t.abs)
}

// resolve joins rel onto the root and canonicalizes both sides. The joined
// path must be the root or lie beneath it. Containment is checked before
// anything else is learned about the target, so a traversal attempt only
// ever sees ErrAccessDenied.
func (s *Service) resolve(op, rel string) (abs, root string, err error) {
	if s.root == "" {
		return "", "", newError(KindConfiguration, op, rel)
	}
	joined := s.root
	if rel != "" {
		if filepath.IsAbs(rel) {
			joined = rel
		} else {
			// Plain concatenation keeps ".." segments intact so they are
			// applied after symlinks, not lexically.
			joined = s.root + string(filepath.Separator) + rel
		}
	}
	root, err = canonicalize(s.root)
	if err != nil {
		return "", "", wrapIO(op, rel, err)
	}
	abs, err = canonicalize(joined)
	if err != nil {
		return "", "", wrapIO(op, rel, err)
	}
	if !within(root, abs) {
		return "", "", newError(KindAccessDenied, op, rel)
	}
	return abs, root, nil
}

// canonicalize resolves symlinks and dot segments in p. When p does not
// exist, its longest existing prefix is resolved and the rest appended.
func canonicalize(p string) (string, error) {
	sep := string(filepath.Separator)
	if trimmed := strings.TrimRight(p, sep); trimmed != "" && trimmed != filepath.VolumeName(p) {
		p = trimmed
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return filepath.Abs(resolved)
	}
	dir := filepath.Dir(p)
	if dir == p {
		return filepath.Abs(p)
	}
	parent, err := canonicalize(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(p)), nil
}

// within reports whether p equals root or descends from it.
func within(root, p string) bool {
	if p == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}

func relTo(root, p string) string {
	r, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(r)
}

// stat resolves rel and checks that it exists.
func (s *Service) stat(op, rel string) (*target, error) {
	abs, root, err := s.resolve(op, rel)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, newError(KindNotFound, op, rel)
		}
		return nil, wrapIO(op, rel, err)
	}
	return &target{abs: abs, root: root, info: info}, nil
}

// dirTarget applies the gate for directory operations.
func (s *Service) dirTarget(op, rel string) (*target, error) {
	t, err := s.stat(op, rel)
	if err != nil {
		return nil, err
	}
	if !t.info.IsDir() {
		return nil, newError(KindNotADirectory, op, rel)
	}
	return t, nil
}

// fileTarget applies the gate for file operations.
func (s *Service) fileTarget(op, rel string) (*target, error) {
	t, err := s.stat(op, rel)
	if err != nil {
		return nil, err
	}
	if t.info.IsDir() {
		return nil, newError(KindIsADirectory, op, rel)
	}
	return t, nil
}
