package config

import "context"

// ctxKey is the private context key for the loaded configuration.
type ctxKey struct{}

// WithContext attaches a loaded configuration to a context.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the configuration attached to the context, or the
// defaults when none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return Default()
}
