package fxapp

import (
	"log"

	"github.com/flowsmith/flowsmith/internal/credential"
	"github.com/flowsmith/flowsmith/internal/engine"
	"github.com/flowsmith/flowsmith/internal/integrations"
	"github.com/flowsmith/flowsmith/internal/server"
	"github.com/flowsmith/flowsmith/internal/server-plugins/diagnostics"
	integrationsplugin "github.com/flowsmith/flowsmith/internal/server-plugins/integrations"
	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow"
	"github.com/flowsmith/flowsmith/internal/step"
	"github.com/flowsmith/flowsmith/pkg/config"
	"github.com/flowsmith/flowsmith/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func New() *fx.App {
	// Default to a verbose logger for debug level
	fxLogger := fx.WithLogger(
		func(cfg *config.ServerConfig) fxevent.Logger {
			if cfg.LogLevel == "debug" {
				return &fxevent.ConsoleLogger{W: log.Writer()}
			}
			return fxevent.NopLogger
		},
	)

	return fx.New(
		fxLogger,
		config.Module,
		logger.Module,
		credential.Module,
		step.Module,
		integrations.Module,
		engine.Module,
		server.Module,
		workflow.Module,
		integrationsplugin.Module,
		diagnostics.Module,
	)
}
