// Package apperr defines the closed set of failures pbcat reports to the user.
//
// Every error that reaches the command line is an *Error carrying a Kind, so
// callers can branch on the category with KindOf or Is instead of matching
// message text. The path or operation that failed is kept as a structured
// field and rendered as the message prefix.
package apperr

import (
	"errors"
	"io/fs"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAccessDenied
	KindIO
	KindInvalidInput
	KindEncoding
	KindNoFilesFound
	KindClipboardUnavailable
	KindUsage
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown error",
	KindNotFound:             "not found",
	KindAccessDenied:         "access denied",
	KindIO:                   "i/o error",
	KindInvalidInput:         "not a file or directory",
	KindEncoding:             "not valid UTF-8",
	KindNoFilesFound:         "no files to copy",
	KindClipboardUnavailable: "no supported clipboard utility found",
	KindUsage:                "usage error",
}

// String returns the default human-readable description of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Error is the single error type surfaced by pbcat.
type Error struct {
	Kind Kind   // Failure category.
	Op   string // Operation that failed, used as prefix when Path is empty.
	Path string // Offending path as the user supplied it, if any.
	Err  error  // Underlying cause; its text replaces the kind description.
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	switch {
	case e.Path != "":
		b.WriteString(e.Path)
	case e.Op != "":
		b.WriteString(e.Op)
	}

	msg := e.Kind.String()
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(msg)
	return b.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an Error of the given kind.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// FromOS classifies a filesystem error. The *fs.PathError wrapper is dropped
// because Path already names the file.
func FromOS(op, path string, err error) *Error {
	if err == nil {
		return nil
	}

	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindAccessDenied
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Usage reports a bad or missing command line value.
func Usage(msg string) *Error {
	return &Error{Kind: KindUsage, Err: errors.New(msg)}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
