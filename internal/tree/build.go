package tree

import (
	"io/fs"
	"log/slog"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
)

// Build reads name from fsys and returns its complete subtree.
//
// Any error from the filesystem aborts the whole build and is returned as is;
// no partial tree is ever returned. Objects that are neither regular files nor
// directories fail with fs.ErrInvalid without being opened. Symlinks are
// followed through fsys.Stat and cycles are not detected.
func Build(fsys parentfs.Filesystem, name string, logger *slog.Logger) (Node, error) {
	n, err := build(fsys, name, logger)
	if err != nil {
		if logger != nil {
			logger.Debug("build failed", "path", name, "error", err)
		}
		return nil, err
	}
	return n, nil
}

func build(fsys parentfs.Filesystem, name string, logger *slog.Logger) (Node, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		return nil, err
	}

	switch {
	case info.Mode().IsRegular():
		data, err := fsys.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Debug("reading file", "path", name, "size", len(data))
		}
		return &File{Data: data}, nil

	case info.IsDir():
		infos, err := fsys.ReadDir(name)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Debug("reading directory", "path", name, "children", len(infos))
		}

		children := make(map[string]Node, len(infos))
		for _, child := range infos {
			n, err := build(fsys, fsys.Join(name, child.Name()), logger)
			if err != nil {
				return nil, err
			}
			children[child.Name()] = n
		}
		return &Dir{Children: children}, nil

	default:
		return nil, &fs.PathError{Op: "build", Path: name, Err: fs.ErrInvalid}
	}
}
