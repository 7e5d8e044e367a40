package schedule

import "github.com/flowsmith/flowsmith/internal/integrations/domain"

// Trigger categories that need no third-party connection. Delivery of these
// triggers (cron, webhook endpoints) lives outside this server; they exist
// here so workflows can name them as entry points.
const (
	TriggerSchedule = "schedule"
	TriggerWebhook  = "webhook"
)

type Integration struct{}

func New() *Integration { return &Integration{} }

func (i *Integration) ID() string   { return "builtin" }
func (i *Integration) Name() string { return "Built-in Triggers" }

func (i *Integration) Description() string {
	return "Schedule and webhook workflow entry points"
}

func (i *Integration) Actions() []domain.ActionDescriptor { return nil }

func (i *Integration) Triggers() []domain.TriggerDescriptor {
	return []domain.TriggerDescriptor{
		{
			Type:        TriggerSchedule,
			Name:        "Schedule",
			Description: "Starts the workflow on a recurring schedule",
		},
		{
			Type:        TriggerWebhook,
			Name:        "Webhook",
			Description: "Starts the workflow when an inbound webhook fires",
		},
	}
}
