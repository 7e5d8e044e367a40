package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
	"github.com/flowsmith/flowsmith/pkg/config"
	"github.com/google/uuid"
)

// FileWorkflowRepository stores each workflow as one JSON document under the
// configured store directory. Writes go through a temp file and rename so a
// crash never leaves a half-written workflow behind.
type FileWorkflowRepository struct {
	dir    string
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewFileWorkflowRepository(cfg config.StoreConfig, logger *slog.Logger) (*FileWorkflowRepository, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workflow store directory: %w", err)
	}
	return &FileWorkflowRepository{dir: cfg.Path, logger: logger}, nil
}

func (r *FileWorkflowRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

func (r *FileWorkflowRepository) Create(ctx context.Context, graph domain.Graph) (*domain.Workflow, error) {
	now := time.Now().UTC()
	workflow := &domain.Workflow{
		ID:        uuid.NewString(),
		Graph:     graph,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write(workflow); err != nil {
		return nil, err
	}

	r.logger.Info("Workflow created",
		"workflow_id", workflow.ID,
		"name", graph.Name,
		"nodes", len(graph.Nodes))
	return workflow, nil
}

func (r *FileWorkflowRepository) Update(ctx context.Context, id string, graph domain.Graph) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.read(id)
	if err != nil {
		return err
	}

	existing.Graph = graph
	existing.UpdatedAt = time.Now().UTC()
	if err := r.write(existing); err != nil {
		return err
	}

	r.logger.Info("Workflow updated",
		"workflow_id", id,
		"nodes", len(graph.Nodes))
	return nil
}

func (r *FileWorkflowRepository) Get(ctx context.Context, id string) (*domain.Workflow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read(id)
}

func (r *FileWorkflowRepository) List(ctx context.Context) ([]*domain.Workflow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow store directory: %w", err)
	}

	var workflows []*domain.Workflow
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		workflow, err := r.read(id)
		if err != nil {
			r.logger.Warn("Skipping unreadable workflow file", "file", entry.Name(), "error", err)
			continue
		}
		workflows = append(workflows, workflow)
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].CreatedAt.Before(workflows[j].CreatedAt)
	})
	return workflows, nil
}

func (r *FileWorkflowRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path(id)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrWorkflowNotFound
		}
		return fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}
	return nil
}

func (r *FileWorkflowRepository) read(id string) (*domain.Workflow, error) {
	raw, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to read workflow %s: %w", id, err)
	}

	var workflow domain.Workflow
	if err := json.Unmarshal(raw, &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode workflow %s: %w", id, err)
	}
	return &workflow, nil
}

func (r *FileWorkflowRepository) write(workflow *domain.Workflow) error {
	encoded, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workflow %s: %w", workflow.ID, err)
	}

	tmp := r.path(workflow.ID) + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write workflow %s: %w", workflow.ID, err)
	}
	if err := os.Rename(tmp, r.path(workflow.ID)); err != nil {
		return fmt.Errorf("failed to store workflow %s: %w", workflow.ID, err)
	}
	return nil
}
