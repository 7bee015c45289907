package rename

import (
	"log/slog"

	"github.com/aretw0/automata/pkg/observability"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger configures a logger for the Session. New assignments are logged
// at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithMetrics records assignments, memo hits and failures.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Session) {
		s.metrics = metrics
	}
}
