package engine

import (
	"github.com/flowsmith/flowsmith/internal/integrations"
	"go.uber.org/fx"
)

var Module = fx.Module("engine",
	fx.Provide(
		func(r *integrations.Registry) StepDispatcher { return r },
		NewRunner,
	),
)
