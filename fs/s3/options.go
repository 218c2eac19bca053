package s3

import (
	"context"
	"log/slog"
)

// DefaultMaxKeys is the listing page size, the S3 maximum.
const DefaultMaxKeys int32 = 1000

// Option configures an FS.
type Option func(*FS)

// WithPrefix roots the filesystem at a key prefix inside the bucket.
// Leading and trailing slashes are ignored.
func WithPrefix(prefix string) Option {
	return func(f *FS) {
		f.prefix = prefix
	}
}

// WithContext sets the context used for every S3 request.
// Default is context.Background().
func WithContext(ctx context.Context) Option {
	return func(f *FS) {
		if ctx != nil {
			f.ctx = ctx
		}
	}
}

// WithMaxKeys sets the page size for listing requests.
// Values outside 1..1000 are ignored.
func WithMaxKeys(n int32) Option {
	return func(f *FS) {
		if n > 0 && n <= DefaultMaxKeys {
			f.maxKeys = n
		}
	}
}

// WithLogger configures the filesystem with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FS) {
		f.logger = logger
	}
}
