package rapidscorer

type options struct {
	threads           int
	parallelDocuments bool
	logger            *Logger
	metrics           MetricsCollector
}

// Option configures Executor behavior.
type Option func(*options)

// WithThreads sets the worker count for document-parallel scoring.
// Defaults to 1.
func WithThreads(n int) Option {
	return func(o *options) {
		o.threads = n
	}
}

// WithParallelDocuments dispatches batch scoring across workers, each
// handling a contiguous range of document groups. Scorers are immutable
// after construction, so a single scorer is shared by all workers.
func WithParallelDocuments() Option {
	return func(o *options) {
		o.parallelDocuments = true
	}
}

// WithLogger sets the structured logger for operation tracing.
// Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}
