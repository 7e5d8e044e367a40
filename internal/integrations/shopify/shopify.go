package shopify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/flowsmith/flowsmith/internal/credential"
	"github.com/flowsmith/flowsmith/internal/integrations/domain"
	"github.com/flowsmith/flowsmith/internal/integrations/httpx"
	"github.com/flowsmith/flowsmith/internal/step"
)

const apiVersion = "2024-01"

// Credential keys users configure under Project Integrations.
const (
	CredentialAPIKey      = "shopifyApiKey"
	CredentialStoreDomain = "storeDomain"
)

// Action and trigger categories contributed to the workflow catalog.
const (
	ActionGetOrder        = "shopify-get-order"
	ActionUpdateInventory = "shopify-update-inventory"
	TriggerOrderCreated   = "shopify-order-created"
)

var orderFields = httpx.FieldMap{
	"orderId":         "id",
	"orderNumber":     "name",
	"email":           "email",
	"totalPrice":      "total_price",
	"currency":        "currency",
	"financialStatus": "financial_status",
	"createdAt":       "created_at",
}

// Integration implements Shopify action steps on the shared HTTP helper.
type Integration struct {
	client *httpx.Client
	logger *slog.Logger
}

func New(client *httpx.Client, logger *slog.Logger) *Integration {
	return &Integration{client: client, logger: logger}
}

func (i *Integration) ID() string   { return "shopify" }
func (i *Integration) Name() string { return "Shopify" }

func (i *Integration) Description() string {
	return "Shopify store actions: read orders and adjust inventory levels"
}

func (i *Integration) Actions() []domain.ActionDescriptor {
	return []domain.ActionDescriptor{
		{
			Type:                ActionGetOrder,
			Name:                "Get Shopify Order",
			Description:         "Fetch one order by id and return its documented fields",
			RequiredCredentials: []string{CredentialAPIKey, CredentialStoreDomain},
			Handler:             i.getOrder,
		},
		{
			Type:                ActionUpdateInventory,
			Name:                "Update Shopify Inventory",
			Description:         "Adjust the inventory level of an item at a location",
			RequiredCredentials: []string{CredentialAPIKey, CredentialStoreDomain},
			Handler:             i.updateInventory,
		},
	}
}

func (i *Integration) Triggers() []domain.TriggerDescriptor {
	return []domain.TriggerDescriptor{
		{
			Type:        TriggerOrderCreated,
			Name:        "Shopify Order Created",
			Description: "Starts the workflow when a new order is placed",
		},
	}
}

func (i *Integration) baseURL(creds credential.Set) (string, step.Result, bool) {
	if _, ok := creds.Get(CredentialAPIKey); !ok {
		return "", step.MissingCredential(CredentialAPIKey), false
	}
	storeDomain, ok := creds.Get(CredentialStoreDomain)
	if !ok {
		return "", step.MissingCredential(CredentialStoreDomain), false
	}
	return "https://" + httpx.NormalizeStoreDomain(storeDomain), step.Result{}, true
}

func authHeader(creds credential.Set) map[string]string {
	apiKey, _ := creds.Get(CredentialAPIKey)
	return map[string]string{"X-Shopify-Access-Token": apiKey}
}

func (i *Integration) getOrder(ctx context.Context, in step.Input, creds credential.Set) step.Result {
	base, failure, ok := i.baseURL(creds)
	if !ok {
		return failure
	}

	orderID, ok := in.Param("orderId")
	if !ok {
		return step.InvalidInput("Order ID is required.")
	}

	resp, err := i.client.DoJSON(ctx, httpx.Request{
		Method: "GET",
		URL:    fmt.Sprintf("%s/admin/api/%s/orders/%s.json", base, apiVersion, url.PathEscape(orderID)),
		Header: authHeader(creds),
	})
	if err != nil {
		return domain.FailureFrom(err)
	}

	order := httpx.Object(resp, "order")
	if order == nil {
		return step.Fail("Order %s was not found.", orderID)
	}
	return step.Succeed(httpx.MapFields(order, orderFields))
}

func (i *Integration) updateInventory(ctx context.Context, in step.Input, creds credential.Set) step.Result {
	base, failure, ok := i.baseURL(creds)
	if !ok {
		return failure
	}

	itemID, ok := in.Param("inventoryItemId")
	if !ok {
		return step.InvalidInput("Inventory item ID is required.")
	}
	locationID, ok := in.Param("locationId")
	if !ok {
		return step.InvalidInput("Location ID is required.")
	}

	rawAdjustment, ok := in.Params["adjustment"]
	if !ok {
		return step.InvalidInput("Adjustment is required.")
	}
	adjustment, ok := step.ParseInt(rawAdjustment)
	if !ok {
		return step.InvalidInput("Adjustment must be a valid integer (e.g., 10 or -5)")
	}

	// Phase 1: read the current level so the result can report the quantity
	// before the adjustment.
	query := url.Values{}
	query.Set("inventory_item_ids", itemID)
	query.Set("location_ids", locationID)

	levels, err := i.client.DoJSON(ctx, httpx.Request{
		Method: "GET",
		URL:    fmt.Sprintf("%s/admin/api/%s/inventory_levels.json?%s", base, apiVersion, query.Encode()),
		Header: authHeader(creds),
	})
	if err != nil {
		return domain.FailureFrom(err)
	}

	records := httpx.Array(levels, "inventory_levels")
	if len(records) == 0 {
		return step.Fail("Inventory level not found for the specified item and location. Check the inventory item ID and location ID.")
	}

	previous := 0
	if first, ok := records[0].(map[string]any); ok {
		if v, ok := step.ParseInt(first["available"]); ok {
			previous = v
		}
	}

	// Phase 2: issue the dependent write. The read-then-adjust pair carries
	// no transactional guarantee; a concurrent upstream mutation between the
	// two calls is an accepted inconsistency.
	adjusted, err := i.client.DoJSON(ctx, httpx.Request{
		Method: "POST",
		URL:    fmt.Sprintf("%s/admin/api/%s/inventory_levels/adjust.json", base, apiVersion),
		Header: authHeader(creds),
		Body: map[string]any{
			"inventory_item_id":    itemID,
			"location_id":          locationID,
			"available_adjustment": adjustment,
		},
	})
	if err != nil {
		return domain.FailureFrom(err)
	}

	newQuantity := previous + adjustment
	if level := httpx.Object(adjusted, "inventory_level"); level != nil {
		if v, ok := step.ParseInt(level["available"]); ok {
			newQuantity = v
		}
	}

	return step.Succeed(map[string]any{
		"inventoryItemId":  itemID,
		"locationId":       locationID,
		"adjustment":       adjustment,
		"previousQuantity": previous,
		"newQuantity":      newQuantity,
	})
}
