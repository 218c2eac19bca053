// Package tree materialises a filesystem object into an immutable in-memory tree
// and compares two such trees structurally.
package tree

// Node is either a *File or a *Dir.
type Node interface {
	node()
}

// File holds the exact bytes of a regular file.
type File struct {
	Data []byte
}

// Dir maps each child's name to its subtree.
type Dir struct {
	Children map[string]Node
}

func (*File) node() {}
func (*Dir) node()  {}
