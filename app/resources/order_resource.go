package resources

import (
	"fmt"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/pkg/resource"
)

// OrderResource shapes an order with its items for API responses.
type OrderResource struct{ resource.Base }

func (r *OrderResource) ToArray(v interface{}) resource.Map {
	o := asModel[models.Order](v)

	items := make([]resource.Map, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, resource.Map{
			"product_id": item.ProductID,
			"name":       item.Name,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"line_total": item.UnitPrice * float64(item.Quantity),
		})
	}

	return resource.Map{
		"id":         o.ID,
		"user_id":    o.UserID,
		"status":     o.Status,
		"subtotal":   o.Subtotal,
		"tax":        o.Tax,
		"total":      o.Total,
		"items":      items,
		"created_at": o.CreatedAt,
		"links":      resource.Map{"self": fmt.Sprintf("/api/orders/%d", o.ID)},
	}
}
