package store

import "go.uber.org/zap"

// options holds optional store settings.
type options struct {
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*options)

// WithLogger sets the logger used to report load and save failures.
// The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
