// Package cellmisc holds shared plumbing for the cellmisc tools: uniform
// access to local files and Google Storage objects, and small path helpers
// used by the command line programs.
package cellmisc

import (
	"io"
	"os/user"
	"path/filepath"
	"strings"
)

type ReaderAtCloser interface {
	io.Reader
	io.ReaderAt
	io.Closer
}

// ExpandHome expands a leading ~ to the current user's home directory, where
// appropriate. If the current user cannot be determined, the path is returned
// unmodified.
func ExpandHome(path string) string {
	usr, err := user.Current()
	if err != nil {
		return path
	}

	if path == "~" {
		path = usr.HomeDir
	} else if strings.HasPrefix(path, "~/") {
		// Use strings.HasPrefix so we don't match paths like
		// "/something/~/something/"
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path
}
