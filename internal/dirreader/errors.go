package dirreader

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrorKind classifies why a directory could not be read.
type ErrorKind int

const (
	ErrOther ErrorKind = iota
	ErrNotFound
	ErrPermissionDenied
	ErrNotADirectory
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotFound:
		return "not found"
	case ErrPermissionDenied:
		return "permission denied"
	case ErrNotADirectory:
		return "not a directory"
	default:
		return "i/o error"
	}
}

// Error reports a failed listing or preview.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the ErrorKind from err, returning ErrOther for foreign errors.
func KindOf(err error) ErrorKind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return classify(err)
}

func classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrOther
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, syscall.ENOTDIR):
		return ErrNotADirectory
	default:
		return ErrOther
	}
}

func wrap(path string, err error) error {
	if err == nil {
		return nil
	}
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr
	}
	return &Error{Kind: classify(err), Path: path, Err: err}
}
