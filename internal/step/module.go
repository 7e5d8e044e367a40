package step

import "go.uber.org/fx"

var Module = fx.Module("step",
	fx.Provide(NewContract),
)
