package integrations

import (
	"github.com/flowsmith/flowsmith/internal/server"
	"go.uber.org/fx"
)

var Module = fx.Module("integrations_plugin",
	fx.Provide(
		server.PluginResult(NewServerPlugin),
	),
)
