package credential

import (
	"context"
	"log/slog"

	"github.com/flowsmith/flowsmith/pkg/config"
)

// ConfigResolver serves credential sets from the project configuration.
// The backing map is never handed out directly: each lookup returns a fresh
// copy so no step can mutate stored credentials.
type ConfigResolver struct {
	integrations map[string]map[string]string
	logger       *slog.Logger
}

func NewConfigResolver(cfg *config.ServerConfig, logger *slog.Logger) *ConfigResolver {
	return &ConfigResolver{
		integrations: cfg.Integrations,
		logger:       logger,
	}
}

func (r *ConfigResolver) Resolve(ctx context.Context, ref string) Set {
	if ref == "" {
		return Set{}
	}

	stored, ok := r.integrations[ref]
	if !ok {
		r.logger.Debug("No credentials configured for integration reference", "ref", ref)
		return Set{}
	}

	set := make(Set, len(stored))
	for key, value := range stored {
		if value == "" {
			continue
		}
		set[key] = value
	}
	return set
}
