package dircompare

import "errors"

// ErrInvalidPath is returned by At when the path has no final name component,
// as with "", ".", ".." or "/". An Entry cannot be named after such a path.
var ErrInvalidPath = errors.New("path has no entry name")
