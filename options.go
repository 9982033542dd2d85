package graphgo

import "log/slog"

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	systems          []namedSystem
}

// Option configures a World at construction.
type Option func(*options)

// WithMetricsCollector reports builder closes, system runs and fetches to mc.
// A nil collector records nothing.
//
//	metrics := &graphgo.BasicMetricsCollector{}
//	w := graphgo.New(graphgo.WithMetricsCollector(metrics))
//	_ = w.Run(ctx)
//	fmt.Println(metrics.GetStats().SystemRunCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger sets the logger used for entity, relation and system events.
// A nil logger discards everything.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel logs text to stderr at level.
func WithLogLevel(level slog.Level) Option {
	return WithLogger(NewTextLogger(level))
}

// WithSystem registers s under name, as RegisterSystem would after New.
func WithSystem(name string, s System) Option {
	return func(o *options) {
		o.systems = append(o.systems, namedSystem{name: name, system: s})
	}
}

func applyOptions(optFns []Option) options {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
