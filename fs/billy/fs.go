// Package billy adapts go-billy filesystems to the read-only fs.Filesystem contract.
package billy

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
)

// FS implements fs.Filesystem on top of a go-billy filesystem.
// Errors are returned exactly as go-billy produces them.
type FS struct {
	fs billy.Filesystem
}

// Stat implements Filesystem.Stat.
func (b *FS) Stat(name string) (os.FileInfo, error) {
	return b.fs.Stat(name)
}

// ReadDir implements Filesystem.ReadDir.
func (b *FS) ReadDir(dirname string) ([]os.FileInfo, error) {
	return b.fs.ReadDir(dirname)
}

// ReadFile implements Filesystem.ReadFile.
// The file handle is opened and closed within the call.
func (b *FS) ReadFile(name string) ([]byte, error) {
	return util.ReadFile(b.fs, name)
}

// Join implements Filesystem.Join.
func (b *FS) Join(elem ...string) string {
	return b.fs.Join(elem...)
}

// Raw returns the underlying go-billy filesystem.
//
//nolint:ireturn // returning interface here is intentional to expose the adapter target.
func (b *FS) Raw() billy.Filesystem {
	return b.fs
}

// NewFS creates a new FS using the given go-billy filesystem.
func NewFS(fsys billy.Filesystem) *FS {
	return &FS{
		fs: fsys,
	}
}

// NewInMemoryFS creates a new, empty in-memory filesystem.
func NewInMemoryFS() *FS {
	return &FS{
		fs: memfs.New(),
	}
}

// NewOSFS creates a new OS filesystem rooted at path.
// Paths passed to the returned FS are resolved inside the root.
func NewOSFS(path string) *FS {
	return &FS{
		fs: osfs.New(path),
	}
}

var _ parentfs.Filesystem = (*FS)(nil)
