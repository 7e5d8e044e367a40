package domain

import "context"

// Repository persists sanitized workflow graphs. Implementations only ever
// see graphs that passed the sanitizer.
type Repository interface {
	Create(ctx context.Context, graph Graph) (*Workflow, error)
	Update(ctx context.Context, id string, graph Graph) error
	Get(ctx context.Context, id string) (*Workflow, error)
	List(ctx context.Context) ([]*Workflow, error)
	Delete(ctx context.Context, id string) error
}
