package fs

import (
	"errors"
	iofs "io/fs"
	"syscall"
)

// ErrorKind is the coarse classification of a filesystem failure.
type ErrorKind int

const (
	ErrUnexpected ErrorKind = iota
	ErrNotFound
	ErrAlreadyExists
	ErrPermissionDenied
	ErrUndecodableName
	ErrEmptyDirectory
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotFound:
		return "Not Found"
	case ErrAlreadyExists:
		return "Already Exists"
	case ErrPermissionDenied:
		return "Permission Denied"
	case ErrUndecodableName:
		return "Undecodable Name"
	case ErrEmptyDirectory:
		return "Empty Directory"
	default:
		return "Unexpected Error"
	}
}

// Error is returned by every operation in this package.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	// Err is the underlying OS error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == ErrUnexpected && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return msg + ": " + e.Path
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or ErrUnexpected when err did not
// come from this package.
func KindOf(err error) ErrorKind {
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr.Kind
	}
	return ErrUnexpected
}

func newError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// classify wraps a raw OS error into the taxonomy.
func classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr
	}
	kind := ErrUnexpected
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, iofs.ErrExist), errors.Is(err, syscall.ENOTEMPTY):
		kind = ErrAlreadyExists
	case errors.Is(err, iofs.ErrPermission):
		kind = ErrPermissionDenied
	}
	return newError(kind, op, path, err)
}
