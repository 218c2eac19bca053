// Package fs defines the read-only filesystem contract that trees are built from.
//
// The contract is deliberately small: stat a path (following symlinks), list the
// direct children of a directory and read a whole file. Providers live in the
// sub-packages (billy, s3, minio, git) and must return errors that satisfy
// errors.Is(err, fs.ErrNotExist) from io/fs when a path does not exist.
package fs

import "os"

// Filesystem is the read side of a filesystem provider.
// Paths are interpreted by the provider; separators are joined with Join.
type Filesystem interface {
	// Stat returns the FileInfo for name, following symlinks.
	Stat(name string) (os.FileInfo, error)

	// ReadDir returns the direct children of dirname in no particular order.
	ReadDir(dirname string) ([]os.FileInfo, error)

	// ReadFile returns the full contents of the named file.
	ReadFile(name string) ([]byte, error)

	// Join joins path elements using the provider's separator.
	Join(elem ...string) string
}
