package models

import "gorm.io/gorm"

// Order statuses. Transitions are linear and forward-only:
// pending → processed → shipped → delivered. Skipping ahead is allowed,
// moving backwards is not.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)

// statusRank orders the statuses for transition checks.
var statusRank = map[string]int{
	StatusPending:   0,
	StatusProcessed: 1,
	StatusShipped:   2,
	StatusDelivered: 3,
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from current to next.
// Same-status transitions are allowed so the update stays idempotent.
func CanTransition(current, next string) bool {
	from, ok := statusRank[current]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

// Order is created exactly once per successful checkout and is immutable
// afterwards except for Status.
type Order struct {
	gorm.Model
	UserID   uint        `gorm:"not null;index" json:"user_id"`
	Status   string      `gorm:"size:50;not null;default:pending" json:"status"`
	Subtotal float64     `gorm:"not null" json:"subtotal"`
	Tax      float64     `gorm:"not null" json:"tax"`
	Total    float64     `gorm:"not null" json:"total"`
	User     *User       `json:"user,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is one line of an order. UnitPrice snapshots the product's
// price at checkout time and is never re-evaluated.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}
