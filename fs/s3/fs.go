package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
	"github.com/input-output-hk/catalyst-forge-libs/dircompare/internal/objectstore"
)

// FS is a read-only view of a bucket prefix.
type FS struct {
	client  API
	bucket  string
	prefix  string
	ctx     context.Context
	maxKeys int32
	logger  *slog.Logger
}

// New creates a filesystem over bucket using client.
func New(client API, bucket string, opts ...Option) *FS {
	f := &FS{
		client:  client,
		bucket:  bucket,
		ctx:     context.Background(),
		maxKeys: DefaultMaxKeys,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Stat implements Filesystem.Stat.
func (f *FS) Stat(name string) (os.FileInfo, error) {
	p := objectstore.Resolve(f.prefix, name)
	if p.IsRoot() {
		return objectstore.NewDirInfo(p.Key), nil
	}

	out, err := f.client.HeadObject(f.ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(p.Key),
	})
	if err == nil {
		return objectstore.NewFileInfo(p.Rel, aws.ToInt64(out.ContentLength), aws.ToTime(out.LastModified)), nil
	}
	if err := translateError("stat", name, err); !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	out2, err := f.client.ListObjectsV2(f.ctx, &awss3.ListObjectsV2Input{
		Bucket:  aws.String(f.bucket),
		Prefix:  aws.String(p.DirPrefix()),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return nil, translateError("stat", name, err)
	}
	if len(out2.Contents) == 0 && len(out2.CommonPrefixes) == 0 {
		return nil, objectstore.NotExist("stat", name)
	}
	return objectstore.NewDirInfo(p.Rel), nil
}

// ReadDir implements Filesystem.ReadDir.
func (f *FS) ReadDir(dirname string) ([]os.FileInfo, error) {
	p := objectstore.Resolve(f.prefix, dirname)
	if f.logger != nil {
		f.logger.DebugContext(f.ctx, "listing prefix", "bucket", f.bucket, "prefix", p.DirPrefix())
	}

	var (
		infos             []os.FileInfo
		found             bool
		continuationToken *string
	)
	for {
		// Check if context is cancelled
		if err := f.ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during S3 listing: %w", err)
		}

		result, err := f.client.ListObjectsV2(f.ctx, &awss3.ListObjectsV2Input{
			Bucket:            aws.String(f.bucket),
			Prefix:            aws.String(p.DirPrefix()),
			Delimiter:         aws.String(objectstore.Separator),
			ContinuationToken: continuationToken,
			MaxKeys:           aws.Int32(f.maxKeys),
		})
		if err != nil {
			return nil, translateError("readdir", dirname, err)
		}

		for _, obj := range result.Contents {
			found = true
			child, ok, err := p.Child(aws.ToString(obj.Key))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			infos = append(infos, objectstore.NewFileInfo(child, aws.ToInt64(obj.Size), aws.ToTime(obj.LastModified)))
		}
		for _, cp := range result.CommonPrefixes {
			found = true
			child, ok, err := p.Child(aws.ToString(cp.Prefix))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			infos = append(infos, objectstore.NewDirInfo(child))
		}

		// Check if there are more pages
		if !aws.ToBool(result.IsTruncated) {
			break
		}
		continuationToken = result.NextContinuationToken
	}

	if !found && !p.IsRoot() {
		info, err := f.Stat(dirname)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
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
func (f *FS) ReadFile(name string) ([]byte, error) {
	p := objectstore.Resolve(f.prefix, name)
	if p.IsRoot() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	if f.logger != nil {
		f.logger.DebugContext(f.ctx, "downloading object", "bucket", f.bucket, "key", p.Key)
	}

	out, err := f.client.GetObject(f.ctx, &awss3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(p.Key),
	})
	if err != nil {
		return nil, translateError("read", name, err)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return data, nil
}

// Join implements Filesystem.Join.
func (f *FS) Join(elem ...string) string {
	return objectstore.Join(elem...)
}

// translateError maps S3 API errors onto io/fs errors.
func translateError(op, name string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return objectstore.NotExist(op, name)
		case "AccessDenied", "Forbidden":
			return &fs.PathError{Op: op, Path: name, Err: fmt.Errorf("%w: %w", fs.ErrPermission, err)}
		}
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

var _ parentfs.Filesystem = (*FS)(nil)
