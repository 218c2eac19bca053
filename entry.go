package dircompare

import (
	"fmt"
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
)

// Entry is a file or directory together with its own name.
//
// Two entries are equal only if they have the same name and equal content.
// This applies to the entries at the given paths as well as to all of their
// children. Use Content to ignore the top-level names.
type Entry struct {
	name    string
	content Content
}

// At reads the entry at path.
//
// It returns an error wrapping ErrInvalidPath if path has no final name
// component, and any I/O error as is.
func At(path string, opts ...Option) (*Entry, error) {
	o := newOptions(opts)
	return at(o.fsys, path, o)
}

// AtFS reads the entry at path from fsys. It is shorthand for
// At(path, WithFilesystem(fsys)) with opts applied afterwards.
func AtFS(fsys fs.Filesystem, path string, opts ...Option) (*Entry, error) {
	return At(path, append([]Option{WithFilesystem(fsys)}, opts...)...)
}

func at(fsys fs.Filesystem, path string, o *options) (*Entry, error) {
	name, err := baseName(path)
	if err != nil {
		return nil, err
	}

	c, err := of(fsys, path, o)
	if err != nil {
		return nil, err
	}

	return &Entry{name: name, content: *c}, nil
}

// baseName returns the final element of path, refusing paths that end in
// something other than a real name.
func baseName(path string) (string, error) {
	name := filepath.Base(filepath.Clean(path))
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return name, nil
}

// Name returns the basename the entry was read from, or "" for a nil Entry.
func (e *Entry) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Content returns the content of the entry, or nil for a nil Entry.
func (e *Entry) Content() *Content {
	if e == nil {
		return nil
	}
	return &e.content
}

// Equal reports whether e and other have the same name and equal content.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.name == other.name && e.content.Equal(&other.content)
}

// String implements fmt.Stringer.
func (e *Entry) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.name, e.content.String())
}
