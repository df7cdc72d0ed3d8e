package state

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTab is returned when adding a tab whose id is taken.
	ErrDuplicateTab = errors.New("tab already exists")
	// ErrTabNotFound is returned for operations on an unknown tab id.
	ErrTabNotFound = errors.New("tab not found")
	// ErrLastTab is returned when removing the only remaining tab.
	ErrLastTab = errors.New("cannot close the last tab")
)

// LoadError reports a directory that could not be listed. Navigation that
// fails this way leaves the tab as it was.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
