package index

import (
	"github.com/google/uuid"

	"github.com/dd0wney/cluso-hamt/pkg/logging"
	"github.com/dd0wney/cluso-hamt/pkg/metrics"
)

// Option adjusts how an index is written or opened.
type Option func(*options)

type options struct {
	compress bool
	buildID  uuid.UUID
	logger   logging.Logger
	metrics  *metrics.Registry
}

func newOptions(opts []Option) options {
	o := options{
		buildID: uuid.New(),
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCompression snappy-compresses the payload when writing.
func WithCompression() Option {
	return func(o *options) { o.compress = true }
}

// WithBuildID pins the build identity instead of generating one.
func WithBuildID(id uuid.UUID) Option {
	return func(o *options) { o.buildID = id }
}

// WithLogger routes build/open events to the given logger.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records builds, opens and lookups in the given registry.
func WithMetrics(registry *metrics.Registry) Option {
	return func(o *options) { o.metrics = registry }
}
