// Package kbfs implements read-only queries over a directory tree rooted at
// a single configured knowledge-base directory.
//
// Every operation resolves the caller's relative path through the same
// containment check before it touches the filesystem. A Service holds no
// mutable state and is safe for concurrent use.
package kbfs

import (
	"path/filepath"

	"go.uber.org/zap"
)

// Defaults shared by the host and the core.
const (
	DefaultLines       = 20
	DefaultGlobPattern = "**/*"

	hiddenPrefix = "."
)

// Entry kinds reported in DirectoryEntry.Type.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// Service answers filesystem queries beneath one root directory.
type Service struct {
	root string
	log  *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for walk diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Service bound to root. A relative root is made absolute
// against the working directory. An empty root is accepted; every
// operation on such a Service fails with ErrRootNotConfigured.
func New(root string, opts ...Option) *Service {
	s := &Service{log: zap.NewNop()}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		s.root = root
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// RootPath returns the configured root, or "" when unset.
func (s *Service) RootPath() string {
	return s.root
}
