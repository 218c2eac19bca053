// Package objectstore holds the path and metadata model shared by the
// object-store providers.
//
// Keys are flat, so directories are implied: a name is a file when an object
// with exactly its key exists, and a directory when some key lives under
// key + "/". The configured prefix is always a directory. Zero-length keys
// ending in "/" (folder markers written by consoles and CLIs) mark a directory
// and are never listed as children.
package objectstore

import (
	"io/fs"
	"path"
	"strings"
	"time"
)

// Separator is the key separator object stores use for folders.
const Separator = "/"

// Path maps a provider path onto the store below prefix.
type Path struct {
	// Name is the path as given by the caller.
	Name string
	// Rel is the cleaned path relative to the prefix; "" for the prefix itself.
	Rel string
	// Key is the object key for a file at this path.
	Key string
}

// Resolve cleans name and joins it below prefix.
func Resolve(prefix, name string) Path {
	rel := strings.TrimPrefix(path.Clean(Separator+name), Separator)
	key := strings.Trim(prefix, Separator)
	if rel != "" {
		if key != "" {
			key += Separator
		}
		key += rel
	}
	return Path{Name: name, Rel: rel, Key: key}
}

// IsRoot reports whether p is the prefix itself.
func (p Path) IsRoot() bool {
	return p.Rel == ""
}

// DirPrefix is the listing prefix for children of p.
func (p Path) DirPrefix() string {
	if p.Key == "" {
		return ""
	}
	return p.Key + Separator
}

// Child returns the direct child name for a listed key or common prefix.
// ok is false only for the folder marker of p itself. A key whose child name
// is empty, "." or ".." or still holds a separator cannot be addressed as a
// single path element and fails with fs.ErrInvalid.
func (p Path) Child(key string) (name string, ok bool, err error) {
	if key == p.DirPrefix() {
		return "", false, nil
	}
	name = strings.TrimSuffix(strings.TrimPrefix(key, p.DirPrefix()), Separator)
	if name == "" || name == "." || name == ".." || strings.Contains(name, Separator) {
		return "", false, &fs.PathError{Op: "readdir", Path: key, Err: fs.ErrInvalid}
	}
	return name, true, nil
}

// Join joins elements with the store separator.
func Join(elem ...string) string {
	return path.Join(elem...)
}

// FileInfo implements fs.FileInfo for objects and implied directories.
type FileInfo struct {
	name    string
	size    int64
	modTime time.Time
	mode    fs.FileMode
}

// NewFileInfo describes an object.
func NewFileInfo(name string, size int64, modTime time.Time) *FileInfo {
	return &FileInfo{name: path.Base(name), size: size, modTime: modTime, mode: 0o644}
}

// NewDirInfo describes an implied directory.
func NewDirInfo(name string) *FileInfo {
	return &FileInfo{name: path.Base(name), mode: fs.ModeDir | 0o755}
}

func (fi *FileInfo) Name() string       { return fi.name }
func (fi *FileInfo) Size() int64        { return fi.size }
func (fi *FileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *FileInfo) ModTime() time.Time { return fi.modTime }
func (fi *FileInfo) IsDir() bool        { return fi.mode&fs.ModeDir != 0 }
func (fi *FileInfo) Sys() interface{}   { return nil }

// NotExist returns the error providers report for a missing path.
func NotExist(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

// NotDir returns the error providers report when listing a file.
func NotDir(name string) error {
	return &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
}
