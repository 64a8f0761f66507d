package vector

import (
	"github.com/go-kit/log"
)

type options struct {
	logger      log.Logger
	metrics     *Metrics
	maxCapacity int
}

var defaultOptions = &options{logger: log.NewNopLogger()}

// Option configures a Vector.
type Option func(*options)

// WithLogger sets the logger used for growth and rollback debug records.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = log.NewNopLogger()
		}
		o.logger = l
	}
}

// WithMetrics reports storage activity to m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithMaxCapacity limits the number of slots a single block may hold.
// Growth beyond n fails with ErrAllocation. n <= 0 means no limit.
func WithMaxCapacity(n int) Option {
	return func(o *options) {
		o.maxCapacity = n
	}
}

func newOptions(opts []Option) *options {
	if len(opts) == 0 {
		return defaultOptions
	}
	o := *defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &o
}
