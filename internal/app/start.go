package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/marcos/internal/userpath"
)

// InvalidStartPathMessage is printed when the browser cannot start at the
// requested directory.
const InvalidStartPathMessage = "Incorrect path or unaccessible directory! Please check PATH"

var errNotDirectory = errors.New("not a directory")

// StartPathError reports a start path that is missing, not a directory, or
// not readable.
type StartPathError struct {
	Path string
	Err  error
}

func (e *StartPathError) Error() string {
	return fmt.Sprintf("invalid start path %q: %v", e.Path, e.Err)
}

func (e *StartPathError) Unwrap() error {
	return e.Err
}

// ResolveStartPath turns the PATH argument into an absolute, readable
// directory. An empty argument means the working directory; "..", "../" and
// "~" forms are expanded.
func ResolveStartPath(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	cwd, err := os.Getwd()
	if err != nil {
		return "", &StartPathError{Path: arg, Err: err}
	}

	var path string
	switch arg {
	case "", ".", "./":
		path = cwd
	case "..", "../":
		path = filepath.Dir(cwd)
	default:
		path = userpath.ExpandUser(arg)
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return "", &StartPathError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return "", &StartPathError{Path: path, Err: errNotDirectory}
	}
	f, err := os.Open(path)
	if err != nil {
		return "", &StartPathError{Path: path, Err: err}
	}
	_ = f.Close()
	return path, nil
}
