package server

import (
	"log/slog"

	"github.com/flowsmith/flowsmith/internal/server-plugin/domain"
)

// PluginRegistry holds the server plugins assembled at startup. Flowsmith's
// plugin set is static: every feature surface is compiled in and registered
// through the fx group "server_plugins".
type PluginRegistry struct {
	plugins []domain.ServerPlugin
	logger  *slog.Logger
}

func NewPluginRegistry(plugins []domain.ServerPlugin, logger *slog.Logger) *PluginRegistry {
	for _, plugin := range plugins {
		logger.Debug("Server plugin registered",
			"plugin_id", plugin.ID(),
			"version", plugin.Version())
	}
	return &PluginRegistry{plugins: plugins, logger: logger}
}

// Plugins returns the registered plugins in registration order.
func (r *PluginRegistry) Plugins() []domain.ServerPlugin {
	return r.plugins
}
