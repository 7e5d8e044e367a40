package integrations

import (
	"sort"

	"github.com/flowsmith/flowsmith/internal/integrations/domain"
	"github.com/flowsmith/flowsmith/internal/step"
)

// Registry indexes the registered integrations and their step handlers.
// It is built once at startup and read-only afterwards.
type Registry struct {
	integrations []domain.Integration
	actions      map[string]domain.ActionDescriptor
	triggers     map[string]domain.TriggerDescriptor
}

func NewRegistry(integrations []domain.Integration) *Registry {
	r := &Registry{
		integrations: integrations,
		actions:      make(map[string]domain.ActionDescriptor),
		triggers:     make(map[string]domain.TriggerDescriptor),
	}
	for _, integration := range integrations {
		for _, action := range integration.Actions() {
			r.actions[action.Type] = action
		}
		for _, trigger := range integration.Triggers() {
			r.triggers[trigger.Type] = trigger
		}
	}
	return r
}

// Integrations returns the registered integrations in registration order.
func (r *Registry) Integrations() []domain.Integration {
	return r.integrations
}

// Step returns the business function for an action category.
func (r *Registry) Step(actionType string) (step.Func, bool) {
	action, ok := r.actions[actionType]
	if !ok {
		return nil, false
	}
	return action.Handler, true
}

// Action returns the descriptor for an action category.
func (r *Registry) Action(actionType string) (domain.ActionDescriptor, bool) {
	action, ok := r.actions[actionType]
	return action, ok
}

// ActionTypes returns the closed set of supported action categories, sorted.
func (r *Registry) ActionTypes() []string {
	types := make([]string, 0, len(r.actions))
	for t := range r.actions {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// TriggerTypes returns the closed set of supported trigger categories, sorted.
func (r *Registry) TriggerTypes() []string {
	types := make([]string, 0, len(r.triggers))
	for t := range r.triggers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
