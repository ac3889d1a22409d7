// Package notifications holds the outbound alerts sent through
// pkg/notification.
package notifications

import (
	"fmt"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/config"
	"github.com/ordena/ordena/pkg/notification"
)

// LowStockNotification warns the ops channels when an order drains a
// product close to empty.
type LowStockNotification struct {
	Product models.Product
}

// Via enables each channel only when its endpoint is configured, so an
// unconfigured install stays silent instead of logging send failures.
func (n *LowStockNotification) Via() []string {
	var channels []string
	if config.Get("SLACK_WEBHOOK", "") != "" {
		channels = append(channels, "slack")
	}
	if config.Get("OPS_WEBHOOK_URL", "") != "" {
		channels = append(channels, "webhook")
	}
	return channels
}

func (n *LowStockNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("Low stock: %s has %d units left", n.Product.Name, n.Product.Stock),
		Attachments: []notification.SlackAttachment{{
			Color: "warning",
			Title: n.Product.Name,
			Text:  fmt.Sprintf("Product #%d, category %q, %d in stock", n.Product.ID, n.Product.Category, n.Product.Stock),
		}},
	}
}

func (n *LowStockNotification) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL: config.Get("OPS_WEBHOOK_URL", ""),
		Payload: map[string]interface{}{
			"event":      "product.low_stock",
			"product_id": n.Product.ID,
			"name":       n.Product.Name,
			"stock":      n.Product.Stock,
		},
	}
}
