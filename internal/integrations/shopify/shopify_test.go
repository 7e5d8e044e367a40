//go:build !integration

package shopify_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/flowsmith/flowsmith/internal/credential"
	"github.com/flowsmith/flowsmith/internal/integrations/domain"
	"github.com/flowsmith/flowsmith/internal/integrations/httpx"
	"github.com/flowsmith/flowsmith/internal/integrations/shopify"
	"github.com/flowsmith/flowsmith/internal/step"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// rewriteTransport redirects every request to the test server regardless of
// the store domain baked into the URL.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newIntegration(server *httptest.Server) *shopify.Integration {
	target, err := url.Parse(server.URL)
	Expect(err).ToNot(HaveOccurred())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := httpx.NewClientWithTransport(rewriteTransport{target: target}, logger)
	return shopify.New(client, logger)
}

func handlerFor(i *shopify.Integration, actionType string) step.Func {
	for _, action := range i.Actions() {
		if action.Type == actionType {
			return action.Handler
		}
	}
	Fail("unknown action type: " + actionType)
	return nil
}

var creds = credential.Set{
	shopify.CredentialAPIKey:      "shpat_test",
	shopify.CredentialStoreDomain: "test-store.myshopify.com",
}

var _ = Describe("Shopify integration", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("catalog", func() {
		It("describes its actions and triggers", func() {
			i := shopify.New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
			Expect(i.ID()).To(Equal("shopify"))

			types := make([]string, 0, 2)
			for _, a := range i.Actions() {
				types = append(types, a.Type)
				Expect(a.RequiredCredentials).To(ConsistOf(
					shopify.CredentialAPIKey, shopify.CredentialStoreDomain))
			}
			Expect(types).To(ConsistOf(shopify.ActionGetOrder, shopify.ActionUpdateInventory))

			Expect(i.Triggers()).To(HaveLen(1))
			Expect(i.Triggers()[0].Type).To(Equal(shopify.TriggerOrderCreated))
		})
	})

	Describe("get order", func() {
		It("returns the documented order fields", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/admin/api/2024-01/orders/1001.json"))
				Expect(r.Header.Get("X-Shopify-Access-Token")).To(Equal("shpat_test"))
				_, _ = w.Write([]byte(`{"order": {
					"id": 1001,
					"name": "#1001",
					"email": "buyer@example.com",
					"total_price": "42.00",
					"currency": "EUR",
					"financial_status": "paid",
					"created_at": "2026-08-30T10:00:00Z",
					"admin_graphql_api_id": "gid://shopify/Order/1001"
				}}`))
			}))
			defer server.Close()

			result := handlerFor(newIntegration(server), shopify.ActionGetOrder)(ctx, step.Input{
				Params: map[string]any{"orderId": "1001"},
			}, creds)

			Expect(result.Success).To(BeTrue())
			Expect(result.Data).To(HaveKeyWithValue("orderId", float64(1001)))
			Expect(result.Data).To(HaveKeyWithValue("orderNumber", "#1001"))
			Expect(result.Data).To(HaveKeyWithValue("totalPrice", "42.00"))
			Expect(result.Data).ToNot(HaveKey("admin_graphql_api_id"))
		})

		It("requires an order id before any call is made", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Fail("no request expected")
			}))
			defer server.Close()

			result := handlerFor(newIntegration(server), shopify.ActionGetOrder)(ctx, step.Input{}, creds)
			Expect(result.Success).To(BeFalse())
			Expect(result.Message).To(Equal("Order ID is required."))
		})

		It("surfaces the upstream error message on a failed fetch", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"errors": "Not Found"}`))
			}))
			defer server.Close()

			result := handlerFor(newIntegration(server), shopify.ActionGetOrder)(ctx, step.Input{
				Params: map[string]any{"orderId": "9999"},
			}, creds)

			Expect(result.Success).To(BeFalse())
			Expect(result.Message).To(Equal("Not Found"))
		})
	})

	Describe("update inventory", func() {
		DescribeTable("missing credentials",
			func(set credential.Set, expectedKey string) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					Fail("no request expected")
				}))
				defer server.Close()

				result := handlerFor(newIntegration(server), shopify.ActionUpdateInventory)(ctx, step.Input{
					Params: map[string]any{"inventoryItemId": "1", "locationId": "2", "adjustment": float64(1)},
				}, set)

				Expect(result.Success).To(BeFalse())
				Expect(result.Message).To(Equal(expectedKey + " is not configured. Please add it in Project Integrations."))
			},
			Entry("no credentials at all", credential.Set{}, shopify.CredentialAPIKey),
			Entry("missing store domain",
				credential.Set{shopify.CredentialAPIKey: "shpat_test"}, shopify.CredentialStoreDomain),
		)

		DescribeTable("invalid adjustments rejected before any call",
			func(adjustment any) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					Fail("no request expected")
				}))
				defer server.Close()

				result := handlerFor(newIntegration(server), shopify.ActionUpdateInventory)(ctx, step.Input{
					Params: map[string]any{
						"inventoryItemId": "807",
						"locationId":      "655",
						"adjustment":      adjustment,
					},
				}, creds)

				Expect(result.Success).To(BeFalse())
				Expect(result.Message).To(Equal("Adjustment must be a valid integer (e.g., 10 or -5)"))
			},
			Entry("prose", "lots"),
			Entry("fractional number", 2.5),
			Entry("fractional string", "2.5"),
			Entry("bool", true),
		)

		It("fails without a write when no inventory level matches", func() {
			wroteAdjustment := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/admin/api/2024-01/inventory_levels.json":
					_, _ = w.Write([]byte(`{"inventory_levels": []}`))
				case "/admin/api/2024-01/inventory_levels/adjust.json":
					wroteAdjustment = true
				default:
					Fail("unexpected path: " + r.URL.Path)
				}
			}))
			defer server.Close()

			result := handlerFor(newIntegration(server), shopify.ActionUpdateInventory)(ctx, step.Input{
				Params: map[string]any{
					"inventoryItemId": "807",
					"locationId":      "655",
					"adjustment":      float64(3),
				},
			}, creds)

			Expect(result.Success).To(BeFalse())
			Expect(result.Message).To(Equal("Inventory level not found for the specified item and location. Check the inventory item ID and location ID."))
			Expect(wroteAdjustment).To(BeFalse())
		})

		It("reads the current level then issues the adjustment", func() {
			var adjustBody map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/admin/api/2024-01/inventory_levels.json":
					Expect(r.Method).To(Equal("GET"))
					Expect(r.URL.Query().Get("inventory_item_ids")).To(Equal("807"))
					Expect(r.URL.Query().Get("location_ids")).To(Equal("655"))
					_, _ = w.Write([]byte(`{"inventory_levels": [{"available": 12}]}`))
				case "/admin/api/2024-01/inventory_levels/adjust.json":
					Expect(r.Method).To(Equal("POST"))
					Expect(json.NewDecoder(r.Body).Decode(&adjustBody)).To(Succeed())
					_, _ = w.Write([]byte(`{"inventory_level": {"available": 7}}`))
				default:
					Fail("unexpected path: " + r.URL.Path)
				}
			}))
			defer server.Close()

			result := handlerFor(newIntegration(server), shopify.ActionUpdateInventory)(ctx, step.Input{
				Params: map[string]any{
					"inventoryItemId": "807",
					"locationId":      "655",
					"adjustment":      "-5",
				},
			}, creds)

			Expect(result.Success).To(BeTrue())
			Expect(result.Data).To(HaveKeyWithValue("previousQuantity", 12))
			Expect(result.Data).To(HaveKeyWithValue("newQuantity", 7))
			Expect(result.Data).To(HaveKeyWithValue("adjustment", -5))
			Expect(adjustBody).To(HaveKeyWithValue("available_adjustment", float64(-5)))
		})

		It("reports the upstream conflict when the write is rejected", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/admin/api/2024-01/inventory_levels.json":
					_, _ = w.Write([]byte(`{"inventory_levels": [{"available": 2}]}`))
				case "/admin/api/2024-01/inventory_levels/adjust.json":
					w.WriteHeader(http.StatusUnprocessableEntity)
					_, _ = w.Write([]byte(`{"errors": "Cannot adjust inventory below zero"}`))
				}
			}))
			defer server.Close()

			result := handlerFor(newIntegration(server), shopify.ActionUpdateInventory)(ctx, step.Input{
				Params: map[string]any{
					"inventoryItemId": "807",
					"locationId":      "655",
					"adjustment":      float64(-10),
				},
			}, creds)

			Expect(result.Success).To(BeFalse())
			Expect(result.Message).To(Equal("Cannot adjust inventory below zero"))
		})
	})
})

var _ = Describe("FailureFrom", func() {
	It("prefers the upstream message from a status error", func() {
		err := &httpx.StatusError{StatusCode: 422, Message: "quantity: must be positive"}
		result := domain.FailureFrom(err)
		Expect(result.Success).To(BeFalse())
		Expect(result.Message).To(Equal("quantity: must be positive"))
	})

	It("falls back to the HTTP status when no message was extracted", func() {
		result := domain.FailureFrom(&httpx.StatusError{StatusCode: 503})
		Expect(result.Message).To(Equal("HTTP 503"))
	})
})
