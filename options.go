package dircompare

import (
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
	"github.com/input-output-hk/catalyst-forge-libs/dircompare/fs/billy"
)

// Option configures how an Entry or Content is read.
type Option func(*options)

type options struct {
	fsys   fs.Filesystem
	logger *slog.Logger
}

// WithFilesystem reads paths from fsys instead of the native filesystem.
// A nil fsys keeps the default.
func WithFilesystem(fsys fs.Filesystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithLogger configures a logger for debug output while reading trees.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.fsys == nil {
		o.fsys = billy.NewBaseOSFS()
	}
	return o
}
