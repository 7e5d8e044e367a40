//go:build !integration

package infrastructure_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/infrastructure"
	"github.com/flowsmith/flowsmith/pkg/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FileWorkflowRepository", func() {
	var (
		repo *infrastructure.FileWorkflowRepository
		dir  string
		ctx  context.Context
	)

	graph := domain.Graph{
		Name: "Order alerts",
		Nodes: []domain.Node{
			{
				ID:   "t1",
				Type: domain.NodeTypeTrigger,
				Data: domain.NodeData{Config: map[string]any{domain.ConfigKeyTriggerType: "schedule"}},
			},
		},
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		var err error
		repo, err = infrastructure.NewFileWorkflowRepository(
			config.StoreConfig{Path: dir},
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)
		Expect(err).ToNot(HaveOccurred())
		ctx = context.Background()
	})

	It("round-trips a workflow through create and get", func() {
		created, err := repo.Create(ctx, graph)
		Expect(err).ToNot(HaveOccurred())
		Expect(created.ID).ToNot(BeEmpty())

		loaded, err := repo.Get(ctx, created.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded.Graph.Name).To(Equal("Order alerts"))
		Expect(loaded.Graph.Nodes).To(HaveLen(1))
		Expect(loaded.CreatedAt).To(BeTemporally("~", created.CreatedAt, time.Second))
	})

	It("replaces the graph and bumps the update time on update", func() {
		created, err := repo.Create(ctx, graph)
		Expect(err).ToNot(HaveOccurred())

		replacement := graph
		replacement.Name = "Inventory sync"
		Expect(repo.Update(ctx, created.ID, replacement)).To(Succeed())

		loaded, err := repo.Get(ctx, created.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded.Graph.Name).To(Equal("Inventory sync"))
		Expect(loaded.UpdatedAt).To(BeTemporally(">=", loaded.CreatedAt))
	})

	It("returns not found for an unknown id", func() {
		_, err := repo.Get(ctx, "nope")
		Expect(errors.Is(err, domain.ErrWorkflowNotFound)).To(BeTrue())

		Expect(errors.Is(repo.Update(ctx, "nope", graph), domain.ErrWorkflowNotFound)).To(BeTrue())
		Expect(errors.Is(repo.Delete(ctx, "nope"), domain.ErrWorkflowNotFound)).To(BeTrue())
	})

	It("lists workflows in creation order", func() {
		first, err := repo.Create(ctx, graph)
		Expect(err).ToNot(HaveOccurred())
		second, err := repo.Create(ctx, graph)
		Expect(err).ToNot(HaveOccurred())

		workflows, err := repo.List(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(workflows).To(HaveLen(2))

		ids := []string{workflows[0].ID, workflows[1].ID}
		Expect(ids).To(ConsistOf(first.ID, second.ID))
		Expect(workflows[0].CreatedAt).To(BeTemporally("<=", workflows[1].CreatedAt))
	})

	It("skips unreadable files when listing", func() {
		_, err := repo.Create(ctx, graph)
		Expect(err).ToNot(HaveOccurred())
		Expect(os.WriteFile(filepath.Join(dir, "corrupt.json"), []byte("{not json"), 0o644)).To(Succeed())

		workflows, err := repo.List(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(workflows).To(HaveLen(1))
	})

	It("deletes a workflow", func() {
		created, err := repo.Create(ctx, graph)
		Expect(err).ToNot(HaveOccurred())

		Expect(repo.Delete(ctx, created.ID)).To(Succeed())
		_, err = repo.Get(ctx, created.ID)
		Expect(errors.Is(err, domain.ErrWorkflowNotFound)).To(BeTrue())
	})
})
