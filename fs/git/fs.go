// Package git reads a tree from a git revision using go-git.
//
// Blobs are files and trees are directories. Symlinks are stored by git as
// blobs holding the link target and are read that way. Submodule entries have
// no content in the parent repository and are reported as irregular files.
package git

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
)

// ErrResolveFailed is returned when a revision cannot be resolved
// to a commit (e.g., branch/tag doesn't exist, invalid SHA).
var ErrResolveFailed = errors.New("cannot resolve revision")

// FS is a read-only view of the tree of a single commit.
type FS struct {
	tree    *object.Tree
	modTime time.Time
	logger  *slog.Logger
}

// Option configures an FS.
type Option func(*FS)

// WithLogger configures the filesystem with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FS) {
		f.logger = logger
	}
}

// New returns the tree of revision in repo. The revision can be anything
// go-git resolves: a branch, a tag, HEAD, HEAD~1 or a commit hash.
func New(repo *git.Repository, revision string, opts ...Option) (*FS, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrResolveFailed, revision, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree for commit %s: %w", hash, err)
	}

	f := NewFromTree(tree, opts...)
	f.modTime = commit.Committer.When
	return f, nil
}

// NewFromTree wraps an already resolved tree.
func NewFromTree(tree *object.Tree, opts ...Option) *FS {
	f := &FS{tree: tree}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// clean turns name into a tree path; "" is the root tree.
func clean(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// Stat implements Filesystem.Stat.
func (f *FS) Stat(name string) (os.FileInfo, error) {
	rel := clean(name)
	if rel == "" {
		return &fileInfo{name: ".", mode: fs.ModeDir | 0o755, modTime: f.modTime}, nil
	}

	entry, err := f.tree.FindEntry(rel)
	if err != nil {
		return nil, translateError("stat", name, err)
	}
	return f.entryInfo(f.tree, rel, entry)
}

// entryInfo describes entry, which lives at rel below tree.
func (f *FS) entryInfo(tree *object.Tree, rel string, entry *object.TreeEntry) (os.FileInfo, error) {
	info := &fileInfo{name: entry.Name, modTime: f.modTime}

	switch entry.Mode {
	case filemode.Dir:
		info.mode = fs.ModeDir | 0o755
	case filemode.Submodule:
		info.mode = fs.ModeIrregular
	default:
		file, err := tree.TreeEntryFile(entry)
		if err != nil {
			return nil, translateError("stat", rel, err)
		}
		info.size = file.Size
		info.mode = 0o644
		if entry.Mode == filemode.Executable {
			info.mode = 0o755
		}
	}
	return info, nil
}

// ReadDir implements Filesystem.ReadDir.
func (f *FS) ReadDir(dirname string) ([]os.FileInfo, error) {
	rel := clean(dirname)

	tree := f.tree
	if rel != "" {
		info, err := f.Stat(dirname)
		if err != nil {
			return nil, translateError("readdir", dirname, err)
		}
		if !info.IsDir() {
			return nil, &fs.PathError{Op: "readdir", Path: dirname, Err: fs.ErrInvalid}
		}
		tree, err = f.tree.Tree(rel)
		if err != nil {
			return nil, translateError("readdir", dirname, err)
		}
	}
	if f.logger != nil {
		f.logger.Debug("reading tree", "path", rel, "hash", tree.Hash.String(), "entries", len(tree.Entries))
	}

	infos := make([]os.FileInfo, 0, len(tree.Entries))
	for i := range tree.Entries {
		info, err := f.entryInfo(tree, path.Join(rel, tree.Entries[i].Name), &tree.Entries[i])
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ReadFile implements Filesystem.ReadFile.
func (f *FS) ReadFile(name string) ([]byte, error) {
	file, err := f.tree.File(clean(name))
	if err != nil {
		return nil, translateError("read", name, err)
	}

	r, err := file.Reader()
	if err != nil {
		return nil, translateError("read", name, err)
	}
	defer func() {
		_ = r.Close()
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return data, nil
}

// Join implements Filesystem.Join.
func (f *FS) Join(elem ...string) string {
	return path.Join(elem...)
}

// translateError maps go-git lookup errors onto io/fs errors.
func translateError(op, name string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return &fs.PathError{Op: op, Path: name, Err: pathErr.Err}
	}
	switch {
	case errors.Is(err, object.ErrEntryNotFound),
		errors.Is(err, object.ErrFileNotFound),
		errors.Is(err, object.ErrDirectoryNotFound),
		errors.Is(err, plumbing.ErrObjectNotFound):
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// fileInfo implements fs.FileInfo for tree entries.
type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
	mode    fs.FileMode
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.mode&fs.ModeDir != 0 }
func (fi *fileInfo) Sys() interface{}   { return nil }

var _ parentfs.Filesystem = (*FS)(nil)
