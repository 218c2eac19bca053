// Package minio reads a tree from an S3-compatible MinIO server.
//
// Objects are files and "/"-delimited key prefixes are directories. The
// semantics match the s3 package, so trees read through either provider
// compare equal when they hold the same keys and bytes.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
	"github.com/input-output-hk/catalyst-forge-libs/dircompare/internal/objectstore"
)

// MinioFS is a read-only view of a bucket prefix on a MinIO server.
type MinioFS struct {
	client *minio.Client
	bucket string
	prefix string
	ctx    context.Context
	logger *slog.Logger
}

// Option configures a MinioFS.
type Option func(*MinioFS)

// WithPrefix roots the filesystem at a key prefix inside the bucket.
func WithPrefix(prefix string) Option {
	return func(m *MinioFS) {
		m.prefix = prefix
	}
}

// WithContext sets the context used for every request.
// Default is context.Background().
func WithContext(ctx context.Context) Option {
	return func(m *MinioFS) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithLogger configures the filesystem with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(m *MinioFS) {
		m.logger = logger
	}
}

// New creates a filesystem over bucket using client.
func New(client *minio.Client, bucket string, opts ...Option) *MinioFS {
	m := &MinioFS{
		client: client,
		bucket: bucket,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Stat implements Filesystem.Stat.
func (m *MinioFS) Stat(name string) (os.FileInfo, error) {
	p := objectstore.Resolve(m.prefix, name)
	if p.IsRoot() {
		return objectstore.NewDirInfo(p.Key), nil
	}

	info, err := m.client.StatObject(m.ctx, m.bucket, p.Key, minio.StatObjectOptions{})
	if err == nil {
		return objectstore.NewFileInfo(p.Rel, info.Size, info.LastModified), nil
	}
	if !isNotFound(err) {
		return nil, translateError("stat", name, err)
	}

	hasChildren, err := m.hasChildren(p)
	if err != nil {
		return nil, translateError("stat", name, err)
	}
	if !hasChildren {
		return nil, objectstore.NotExist("stat", name)
	}
	return objectstore.NewDirInfo(p.Rel), nil
}

// hasChildren reports whether any key lives below p.
func (m *MinioFS) hasChildren(p objectstore.Path) (bool, error) {
	ctx, cancel := context.WithCancel(m.ctx)
	defer cancel()

	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:  p.DirPrefix(),
		MaxKeys: 1,
	}) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}

// ReadDir implements Filesystem.ReadDir.
func (m *MinioFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	p := objectstore.Resolve(m.prefix, dirname)
	if m.logger != nil {
		m.logger.DebugContext(m.ctx, "listing prefix", "bucket", m.bucket, "prefix", p.DirPrefix())
	}

	ctx, cancel := context.WithCancel(m.ctx)
	defer cancel()

	var (
		infos []os.FileInfo
		found bool
	)
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    p.DirPrefix(),
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, translateError("readdir", dirname, obj.Err)
		}
		found = true

		child, ok, err := p.Child(obj.Key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if strings.HasSuffix(obj.Key, objectstore.Separator) {
			infos = append(infos, objectstore.NewDirInfo(child))
			continue
		}
		infos = append(infos, objectstore.NewFileInfo(child, obj.Size, obj.LastModified))
	}

	if !found && !p.IsRoot() {
		info, err := m.Stat(dirname)
		if err != nil {
			if isNotFound(err) {
				return nil, objectstore.NotExist("readdir", dirname)
			}
			return nil, err
		}
		if !info.IsDir() {
			return nil, objectstore.NotDir(dirname)
		}
	}
	return infos, nil
}

// ReadFile implements Filesystem.ReadFile.
// The object is downloaded in full and the handle closed before returning.
func (m *MinioFS) ReadFile(name string) ([]byte, error) {
	p := objectstore.Resolve(m.prefix, name)
	if p.IsRoot() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	if m.logger != nil {
		m.logger.DebugContext(m.ctx, "downloading object", "bucket", m.bucket, "key", p.Key)
	}

	obj, err := m.client.GetObject(m.ctx, m.bucket, p.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError("read", name, err)
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateError("read", name, err)
	}
	return data, nil
}

// Join implements Filesystem.Join.
func (m *MinioFS) Join(elem ...string) string {
	return objectstore.Join(elem...)
}

// isNotFound reports whether err means the object or key does not exist.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NotFound" || resp.StatusCode == http.StatusNotFound
}

// translateError maps MinIO errors onto io/fs errors.
func translateError(op, name string, err error) error {
	if isNotFound(err) {
		return objectstore.NotExist(op, name)
	}
	resp := minio.ToErrorResponse(err)
	if resp.Code == "AccessDenied" || resp.StatusCode == http.StatusForbidden {
		return &fs.PathError{Op: op, Path: name, Err: fmt.Errorf("%w: %w", fs.ErrPermission, err)}
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

var _ parentfs.Filesystem = (*MinioFS)(nil)
