package integrations

import (
	"github.com/flowsmith/flowsmith/internal/integrations/domain"
	"github.com/flowsmith/flowsmith/internal/integrations/httpx"
	"github.com/flowsmith/flowsmith/internal/integrations/schedule"
	"github.com/flowsmith/flowsmith/internal/integrations/shopify"
	"github.com/flowsmith/flowsmith/internal/integrations/slack"
	"go.uber.org/fx"
)

var Module = fx.Module("integrations",
	fx.Provide(
		httpx.NewClient,
		fx.Annotate(shopify.New, fx.As(new(domain.Integration)), fx.ResultTags(`group:"integrations"`)),
		fx.Annotate(slack.New, fx.As(new(domain.Integration)), fx.ResultTags(`group:"integrations"`)),
		fx.Annotate(schedule.New, fx.As(new(domain.Integration)), fx.ResultTags(`group:"integrations"`)),
		fx.Annotate(NewRegistry, fx.ParamTags(`group:"integrations"`)),
	),
)
