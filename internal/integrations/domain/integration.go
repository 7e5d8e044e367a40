package domain

import "github.com/flowsmith/flowsmith/internal/step"

// Integration describes one third-party connection: the action steps it can
// execute and the trigger categories it can start a workflow from.
type Integration interface {
	ID() string
	Name() string
	Description() string

	Actions() []ActionDescriptor
	Triggers() []TriggerDescriptor
}

// ActionDescriptor is one executable action category, with the business
// function that runs it under the step contract.
type ActionDescriptor struct {
	Type        string
	Name        string
	Description string

	// RequiredCredentials names the secret keys the handler expects in its
	// resolved credential set. Used to report configuration status; the
	// handler still checks presence itself and fails with the exact key name.
	RequiredCredentials []string

	Handler step.Func
}

// TriggerDescriptor is one trigger category an integration can provide.
// Triggers only classify workflow entry points here; scheduling and webhook
// delivery live outside this server.
type TriggerDescriptor struct {
	Type        string
	Name        string
	Description string
}
