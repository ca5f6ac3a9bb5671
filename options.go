package awl

import "log/slog"

type Option func(*injectorConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *injectorConfig) {
		cfg.logger = logger
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *injectorConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}
