package workflow

import (
	"github.com/flowsmith/flowsmith/internal/integrations"
	"github.com/flowsmith/flowsmith/internal/server"
	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/application"
	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/infrastructure"
	"go.uber.org/fx"
)

var Module = fx.Module("workflow",
	fx.Provide(
		func(registry *integrations.Registry) *domain.Sanitizer {
			return domain.NewSanitizer(registry.ActionTypes())
		},
		fx.Annotate(
			infrastructure.NewFileWorkflowRepository,
			fx.As(new(domain.Repository)),
		),
		application.NewAssemblyUseCase,
		func(registry *integrations.Registry) Catalog { return registry },
		server.PluginResult(NewServerPlugin),
	),
)
