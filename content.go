package dircompare

import (
	"fmt"
	"slices"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
	"github.com/input-output-hk/catalyst-forge-libs/dircompare/internal/tree"
)

// Content is the content of a file or directory: the bytes of a file, or the
// entries of a directory.
//
// Comparing two contents ignores the names of the file or directory they were
// read from. The names of their children still matter.
type Content struct {
	node tree.Node
}

// Of reads the content of the file or directory at path.
// I/O errors are returned as is.
func Of(path string, opts ...Option) (*Content, error) {
	o := newOptions(opts)
	return of(o.fsys, path, o)
}

// OfFS reads the content at path from fsys. It is shorthand for
// Of(path, WithFilesystem(fsys)) with opts applied afterwards.
func OfFS(fsys fs.Filesystem, path string, opts ...Option) (*Content, error) {
	return Of(path, append([]Option{WithFilesystem(fsys)}, opts...)...)
}

func of(fsys fs.Filesystem, path string, o *options) (*Content, error) {
	n, err := tree.Build(fsys, path, o.logger)
	if err != nil {
		return nil, err
	}
	return &Content{node: n}, nil
}

// Equal reports whether c and other hold the same bytes, or the same entries
// compared by name and content.
func (c *Content) Equal(other *Content) bool {
	if c == nil || other == nil {
		return c == other
	}
	return tree.Equal(c.node, other.node)
}

// IsDir reports whether the content was read from a directory.
func (c *Content) IsDir() bool {
	if c == nil {
		return false
	}
	_, ok := c.node.(*tree.Dir)
	return ok
}

// Bytes returns a copy of the file's bytes, or nil for a directory or a nil Content.
func (c *Content) Bytes() []byte {
	if c == nil {
		return nil
	}
	f, ok := c.node.(*tree.File)
	if !ok {
		return nil
	}
	return append([]byte{}, f.Data...)
}

// Entries returns the directory's children sorted by name, or nil for a file
// or a nil Content.
func (c *Content) Entries() []*Entry {
	if c == nil {
		return nil
	}
	d, ok := c.node.(*tree.Dir)
	if !ok {
		return nil
	}

	entries := make([]*Entry, 0, len(d.Children))
	for name, child := range d.Children {
		entries = append(entries, &Entry{name: name, content: Content{node: child}})
	}
	slices.SortFunc(entries, func(a, b *Entry) int {
		return strings.Compare(a.name, b.name)
	})
	return entries
}

// String implements fmt.Stringer.
func (c *Content) String() string {
	if c == nil {
		return "<nil>"
	}
	switch n := c.node.(type) {
	case *tree.File:
		return fmt.Sprintf("file(%d bytes)", len(n.Data))
	case *tree.Dir:
		return fmt.Sprintf("dir(%d entries)", len(n.Children))
	default:
		return "<nil>"
	}
}
