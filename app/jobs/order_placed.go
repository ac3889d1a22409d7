// Package jobs holds the background jobs dispatched through pkg/queue.
package jobs

import (
	"fmt"
	"strings"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/notifications"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/config"
	"github.com/ordena/ordena/pkg/event"
	"github.com/ordena/ordena/pkg/logger"
	"github.com/ordena/ordena/pkg/mail"
	"github.com/ordena/ordena/pkg/notification"
	"github.com/ordena/ordena/pkg/queue"
)

// lowStockThreshold triggers a restock warning after an order drains a
// product near empty.
const lowStockThreshold = 5

// OrderPlacedJob runs after a checkout commits: it emails the order
// confirmation and flags products left low on stock.
type OrderPlacedJob struct {
	OrderID uint `json:"order_id"`
}

// RegisterJobs makes every job type known to the queue. Called once at boot.
func RegisterJobs() {
	queue.Register("jobs.OrderPlacedJob", func() queue.Job { return &OrderPlacedJob{} })
}

func (j OrderPlacedJob) Handle() error {
	orders := repositories.NewOrderRepository()
	users := repositories.NewUserRepository()
	products := repositories.NewProductRepository()

	order, err := orders.FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("order placed job: load order %d: %w", j.OrderID, err)
	}

	user, err := users.FindByID(order.UserID)
	if err != nil {
		return fmt.Errorf("order placed job: load user %d: %w", order.UserID, err)
	}

	if config.Get("MAIL_USERNAME", "") == "" {
		logger.Debug("order placed job: mail not configured, skipping confirmation",
			"order_id", order.ID)
	} else if err := mail.To(user.Email).
		Subject(fmt.Sprintf("Order #%d confirmed", order.ID)).
		Body(confirmationBody(order)).
		Send(); err != nil {
		return fmt.Errorf("order placed job: send confirmation: %w", err)
	}

	for _, item := range order.Items {
		product, err := products.FindByID(item.ProductID)
		if err != nil {
			continue // product may have been deleted since checkout
		}
		if product.Stock <= lowStockThreshold {
			logger.Warn("product low on stock",
				"product_id", product.ID, "name", product.Name, "stock", product.Stock)
			event.Fire("product.low_stock", product)
			notification.SendAsync("", &notifications.LowStockNotification{Product: product})
		}
	}

	return nil
}

func confirmationBody(order models.Order) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>Thanks for your order #%d</h1>", order.ID))
	b.WriteString("<ul>")
	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("<li>%d × %s (%.2f)</li>",
			item.Quantity, item.Name, item.UnitPrice))
	}
	b.WriteString("</ul>")
	b.WriteString(fmt.Sprintf("<p>Total: %.2f</p>", order.Total))
	return b.String()
}
