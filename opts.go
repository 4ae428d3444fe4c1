package kmerhash

import "go.uber.org/zap"

// Option configures a table at Construct time.
type Option func(*config)

// OptList returns a slice with the opts given; useful if you want to
// possibly append more options to the list before using it with Construct.
func OptList(opts ...Option) []Option {
	return opts
}

// OptOutboxSize sets the per-target outbox capacity (spec.md §3's S).
// Defaults to env KMERHASH_OUTBOX_SIZE or defaultOutboxSize. Larger values
// amortize shipment cost but raise per-rank memory footprint by
// P*S*sizeof(record) (spec.md §9).
func OptOutboxSize(size int) Option {
	return func(cfg *config) {
		cfg.outboxSize = size
	}
}

// OptLogger installs a structured logger a table will emit collective
// diagnostics through (shipment sizes, saturation, drain progress). The
// default is a no-op logger, so embedding this table in a larger pipeline
// carries no forced side effects.
func OptLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
