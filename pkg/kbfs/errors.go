package kbfs

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per Kind. Every error returned by a Service
// operation wraps exactly one of them.
var (
	ErrRootNotConfigured = errors.New("root directory not configured")
	ErrAccessDenied      = errors.New("access outside root directory is not allowed")
	ErrNotFound          = errors.New("path does not exist")
	ErrNotADirectory     = errors.New("path is not a directory")
	ErrIsADirectory      = errors.New("path is a directory, not a file")
	ErrDecoding          = errors.New("file is not valid UTF-8 text")
	ErrInvalidPattern    = errors.New("invalid pattern")
)

// Kind classifies a failed operation.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindAccessDenied
	KindNotFound
	KindNotADirectory
	KindIsADirectory
	KindDecoding
	KindPattern
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindConfiguration: "configuration",
	KindAccessDenied:  "access_denied",
	KindNotFound:      "not_found",
	KindNotADirectory: "not_a_directory",
	KindIsADirectory:  "is_a_directory",
	KindDecoding:      "decoding",
	KindPattern:       "pattern",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

var kindSentinels = map[Kind]error{
	KindConfiguration: ErrRootNotConfigured,
	KindAccessDenied:  ErrAccessDenied,
	KindNotFound:      ErrNotFound,
	KindNotADirectory: ErrNotADirectory,
	KindIsADirectory:  ErrIsADirectory,
	KindDecoding:      ErrDecoding,
	KindPattern:       ErrInvalidPattern,
}

// Error carries the operation, the caller-supplied relative path and the
// underlying cause of a failure.
type Error struct {
	Kind    Kind
	Op      string // operation name, e.g. "read_file"
	Path    string // relative path as supplied by the caller
	Err     error  // sentinel or raw I/O error
	Details string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op, path string, details ...string) *Error {
	e := &Error{Kind: kind, Op: op, Path: path, Err: kindSentinels[kind]}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// wrapIO classifies a raw filesystem error. Anything that is not a
// recognised condition keeps KindUnknown and the original error.
func wrapIO(op, path string, err error) *Error {
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr
	}
	return &Error{Kind: KindUnknown, Op: op, Path: path, Err: err}
}

// KindOf reports the Kind of err, or KindUnknown if err was not produced by
// this package.
func KindOf(err error) Kind {
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr.Kind
	}
	for k, s := range kindSentinels {
		if errors.Is(err, s) {
			return k
		}
	}
	return KindUnknown
}
