package storage

import (
	"time"

	"go.uber.org/zap"
)

// options holds the injectable dependencies of the file backed KVs
type options struct {
	fs          FileSystem
	lockFactory FileLockFactory
	logger      *zap.Logger
	clock       func() time.Time
}

// Option is a function that modifies KV configuration
type Option func(*options)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) Option {
	return func(o *options) {
		o.lockFactory = factory
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the time source used to stamp file metadata
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = &OSFileSystem{}
	}
	if o.lockFactory == nil {
		o.lockFactory = &FlockFactory{}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	return o
}
