// Package upload models the files a user hands to the assistant. A FileRef
// is an opaque handle: the dialogue layer derives tool identity from the
// name alone and only opens the content when it is ready to parse it.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileRef is a named, lazily-opened file provided by the user.
type FileRef struct {
	Name string

	open func() (io.ReadCloser, error)
}

// FromBytes builds a FileRef backed by an in-memory buffer.
func FromBytes(name string, data []byte) FileRef {
	return FileRef{
		Name: name,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FromPath builds a FileRef backed by a file on disk. The ref's name is the
// base name of the path, since tool inference works on file names only.
func FromPath(path string) FileRef {
	return FileRef{
		Name: filepath.Base(path),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// Open returns a reader over the file content. The caller closes it.
func (f FileRef) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("upload: no content attached to %q", f.Name)
	}
	return f.open()
}
