package tree

import "bytes"

// Equal reports whether a and b describe the same tree.
//
// Files are equal when their bytes are identical. Directories are equal when
// they hold the same set of names and the children under each name are equal.
// A file never equals a directory. The comparison stops at the first mismatch.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *File:
		b, ok := b.(*File)
		return ok && bytes.Equal(a.Data, b.Data)
	case *Dir:
		b, ok := b.(*Dir)
		if !ok || len(a.Children) != len(b.Children) {
			return false
		}
		for name, child := range a.Children {
			other, ok := b.Children[name]
			if !ok || !Equal(child, other) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
