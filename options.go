package flowlayout

import (
	"log/slog"
	"time"

	"github.com/agiangrant/flowlayout/scroll"
)

// Option customizes a FlowLayout at construction.
type Option func(*FlowLayout)

// WithLogger routes the container's diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FlowLayout) {
		if logger != nil {
			f.log = logger
		}
	}
}

// WithClock replaces time.Now for programmatic scroll animations.
func WithClock(now func() time.Time) Option {
	return func(f *FlowLayout) {
		if now != nil {
			f.now = now
		}
	}
}

// WithVelocityEstimator replaces the default least-squares velocity tracker.
func WithVelocityEstimator(v scroll.VelocityEstimator) Option {
	return func(f *FlowLayout) {
		f.estimator = v
	}
}
