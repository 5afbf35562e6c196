package clustergo

type options struct {
	logger *Logger
}

// Option configures the facade entry points.
//
// Today options primarily exist to avoid exploding the API surface;
// algorithm parameters belong in kmeans.Config.
type Option func(*options)

// WithLogger attaches a logger; engines emit per-iteration statistics at
// Debug level. Pass nil to keep logging disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) *options {
	o := &options{}
	for _, fn := range optFns {
		fn(o)
	}
	return o
}
