package kmerhash

import (
	"os"
	"strconv"

	"go.uber.org/zap"
)

// defaultOutboxSize is the reference design's default outbox capacity per
// target (spec.md §9, "Default in the reference design: 80 000").
const defaultOutboxSize = 80000

// config holds the resolved set of values controlling a table's behavior.
// Changing a config instance after Construct has no effect on tables
// already built from it, matching gholt/locmap's Config contract.
type config struct {
	outboxSize int
	logger     *zap.Logger
}

// resolveConfig applies environment-variable fallbacks and then functional
// options, in that order, matching gholt/locmap's opts.go resolution order
// (env vars establish the baseline, explicit Opts override it).
func resolveConfig(opts ...Option) *config {
	cfg := &config{}
	if env := os.Getenv("KMERHASH_OUTBOX_SIZE"); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			cfg.outboxSize = val
		}
	}
	if cfg.outboxSize <= 0 {
		cfg.outboxSize = defaultOutboxSize
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.outboxSize < 1 {
		cfg.outboxSize = 1
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}
