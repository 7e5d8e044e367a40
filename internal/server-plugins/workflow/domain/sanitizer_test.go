//go:build !integration

package domain_test

import (
	"errors"

	"github.com/flowsmith/flowsmith/internal/server-plugins/workflow/domain"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func triggerNode(id, triggerType string) domain.Node {
	return domain.Node{
		ID:   id,
		Type: domain.NodeTypeTrigger,
		Data: domain.NodeData{Config: map[string]any{domain.ConfigKeyTriggerType: triggerType}},
	}
}

func actionNode(id, actionType string) domain.Node {
	return domain.Node{
		ID:   id,
		Type: domain.NodeTypeAction,
		Data: domain.NodeData{Config: map[string]any{domain.ConfigKeyActionType: actionType}},
	}
}

func warningCodes(warnings []domain.Warning) []string {
	codes := make([]string, len(warnings))
	for i, w := range warnings {
		codes[i] = w.Code
	}
	return codes
}

var _ = Describe("Sanitizer", func() {
	var sanitizer *domain.Sanitizer

	BeforeEach(func() {
		sanitizer = domain.NewSanitizer([]string{"shopify-get-order", "slack-send-message"})
	})

	Describe("edge type normalization", func() {
		DescribeTable("forcing every edge onto the standard connector",
			func(inputType string, expectWarning bool) {
				graph := domain.Graph{
					Nodes: []domain.Node{
						triggerNode("t1", "schedule"),
						actionNode("a1", "slack-send-message"),
					},
					Edges: []domain.Edge{{Source: "t1", Target: "a1", Type: inputType}},
				}

				outcome, err := sanitizer.Sanitize(graph, nil)
				Expect(err).ToNot(HaveOccurred())
				Expect(outcome.Graph.Edges).To(HaveLen(1))
				Expect(outcome.Graph.Edges[0].Type).To(Equal(domain.EdgeTypeDefault))

				if expectWarning {
					Expect(warningCodes(outcome.Warnings)).To(ContainElement(domain.WarningEdgeTypeNormalized))
				} else {
					Expect(outcome.Warnings).To(BeEmpty())
				}
			},
			Entry("already standard", "default", false),
			Entry("empty type", "", true),
			Entry("smoothstep", "smoothstep", true),
			Entry("bezier", "bezier", true),
			Entry("arbitrary garbage", "!!not-a-type!!", true),
		)
	})

	Describe("single trigger enforcement", func() {
		It("keeps the first trigger and drops the rest with their edges", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{
					triggerNode("t1", "schedule"),
					triggerNode("t2", "webhook"),
					actionNode("a1", "slack-send-message"),
				},
				Edges: []domain.Edge{
					{Source: "t1", Target: "a1", Type: "default"},
					{Source: "t2", Target: "a1", Type: "default"},
				},
			}

			outcome, err := sanitizer.Sanitize(graph, nil)
			Expect(err).ToNot(HaveOccurred())

			Expect(outcome.Graph.Triggers()).To(HaveLen(1))
			Expect(outcome.Graph.Triggers()[0].ID).To(Equal("t1"))
			Expect(outcome.Graph.HasNode("t2")).To(BeFalse())
			Expect(outcome.Graph.Edges).To(HaveLen(1))
			Expect(outcome.Graph.Edges[0].Source).To(Equal("t1"))

			Expect(warningCodes(outcome.Warnings)).To(ConsistOf(domain.WarningTriggerCountCorrected))
			Expect(outcome.Warnings[0].Message).To(ContainSubstring(`kept "t1"`))
		})

		It("leaves a single-trigger graph untouched", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{
					triggerNode("t1", "schedule"),
					actionNode("a1", "slack-send-message"),
				},
				Edges: []domain.Edge{{Source: "t1", Target: "a1", Type: "default"}},
			}

			outcome, err := sanitizer.Sanitize(graph, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.Warnings).To(BeEmpty())
			Expect(outcome.Graph.Nodes).To(HaveLen(2))
		})
	})

	Describe("dangling edges", func() {
		It("drops edges whose endpoints do not exist", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{
					triggerNode("t1", "schedule"),
					actionNode("a1", "slack-send-message"),
				},
				Edges: []domain.Edge{
					{Source: "t1", Target: "a1", Type: "default"},
					{Source: "t1", Target: "ghost", Type: "default"},
					{Source: "phantom", Target: "a1", Type: "default"},
				},
			}

			outcome, err := sanitizer.Sanitize(graph, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.Graph.Edges).To(HaveLen(1))
			Expect(warningCodes(outcome.Warnings)).To(ConsistOf(domain.WarningDanglingEdgeDropped))
		})
	})

	Describe("completeness", func() {
		It("fails a graph with an action node missing its category", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{
					triggerNode("t1", "schedule"),
					{ID: "a1", Type: domain.NodeTypeAction},
				},
			}

			outcome, err := sanitizer.Sanitize(graph, nil)
			Expect(outcome).To(BeNil())
			Expect(errors.Is(err, domain.ErrIncompleteNodes)).To(BeTrue())

			var incomplete *domain.IncompleteNodesError
			Expect(errors.As(err, &incomplete)).To(BeTrue())
			Expect(incomplete.NodeIDs).To(ConsistOf("a1"))
			Expect(err.Error()).To(Equal(
				"1 incomplete node(s): every trigger needs a triggerType and every action needs an actionType. Supported action types: shopify-get-order, slack-send-message",
			))
		})

		It("fails a graph with a trigger node missing its category", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{
					{ID: "t1", Type: domain.NodeTypeTrigger},
					actionNode("a1", "slack-send-message"),
				},
			}

			_, err := sanitizer.Sanitize(graph, nil)
			Expect(errors.Is(err, domain.ErrIncompleteNodes)).To(BeTrue())
		})

		It("takes precedence over emitting a corrected graph", func() {
			// Two triggers AND an incomplete action: the trigger reduction
			// would apply, but the fatal check must swallow the whole result.
			graph := domain.Graph{
				Nodes: []domain.Node{
					triggerNode("t1", "schedule"),
					triggerNode("t2", "webhook"),
					{ID: "a1", Type: domain.NodeTypeAction},
				},
				Edges: []domain.Edge{
					{Source: "t1", Target: "t2", Type: "default"},
					{Source: "t2", Target: "a1", Type: "default"},
				},
			}

			outcome, err := sanitizer.Sanitize(graph, nil)
			Expect(outcome).To(BeNil())
			Expect(errors.Is(err, domain.ErrIncompleteNodes)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("1 incomplete node(s)"))
		})

		It("exempts placeholder and pass-through nodes", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{
					triggerNode("t1", "schedule"),
					{ID: "add1", Type: domain.NodeTypeAdd},
					{ID: "c1", Type: domain.NodeTypeCondition},
					{ID: "x1", Type: domain.NodeTypeTransform},
				},
			}

			outcome, err := sanitizer.Sanitize(graph, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.Graph.Nodes).To(HaveLen(4))
		})
	})

	Describe("merging over an existing graph", func() {
		existing := &domain.Graph{
			Name:        "Order alerts",
			Description: "Ping the channel on new orders",
			Nodes:       []domain.Node{triggerNode("old-t", "shopify-order-created")},
		}

		It("replaces the existing graph wholesale", func() {
			candidate := domain.Graph{
				Name:  "Inventory sync",
				Nodes: []domain.Node{triggerNode("t1", "schedule")},
			}

			outcome, err := sanitizer.Sanitize(candidate, existing)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.Graph.Name).To(Equal("Inventory sync"))
			Expect(outcome.Graph.HasNode("old-t")).To(BeFalse())
		})

		It("falls back to the existing name and description when omitted", func() {
			candidate := domain.Graph{
				Nodes: []domain.Node{triggerNode("t1", "schedule")},
			}

			outcome, err := sanitizer.Sanitize(candidate, existing)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.Graph.Name).To(Equal("Order alerts"))
			Expect(outcome.Graph.Description).To(Equal("Ping the channel on new orders"))
		})
	})

	Describe("selection propagation", func() {
		It("reports the first selected node", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{
					triggerNode("t1", "schedule"),
					func() domain.Node {
						n := actionNode("a1", "slack-send-message")
						n.Selected = true
						return n
					}(),
					func() domain.Node {
						n := actionNode("a2", "slack-send-message")
						n.Selected = true
						return n
					}(),
				},
			}

			outcome, err := sanitizer.Sanitize(graph, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.ActiveNodeID).To(Equal("a1"))
		})

		It("reports nothing when no node is selected", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{triggerNode("t1", "schedule")},
			}

			outcome, err := sanitizer.Sanitize(graph, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.ActiveNodeID).To(BeEmpty())
		})
	})

	Describe("idempotence", func() {
		It("reports no warnings when sanitizing its own output", func() {
			graph := domain.Graph{
				Nodes: []domain.Node{
					triggerNode("t1", "schedule"),
					triggerNode("t2", "webhook"),
					actionNode("a1", "slack-send-message"),
				},
				Edges: []domain.Edge{
					{Source: "t1", Target: "a1", Type: "smoothstep"},
					{Source: "t2", Target: "a1", Type: "default"},
					{Source: "a1", Target: "gone", Type: "default"},
				},
			}

			first, err := sanitizer.Sanitize(graph, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(first.Warnings).ToNot(BeEmpty())

			second, err := sanitizer.Sanitize(first.Graph, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(second.Warnings).To(BeEmpty())
			Expect(second.Graph).To(Equal(first.Graph))
		})
	})
})
