package services

import (
	"errors"
	"fmt"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/pkg/event"
	"github.com/ordena/ordena/pkg/logger"
	"github.com/ordena/ordena/pkg/metrics"
	"github.com/ordena/ordena/pkg/orm"
	"gorm.io/gorm"
)

// OrderService owns order listing and the status state machine.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService() *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository()}
}

// List returns the orders visible to the caller: staff see every order,
// customers only their own.
func (s *OrderService) List(userID uint, role string, page, limit int) ([]models.Order, orm.Pagination, error) {
	if models.IsStaff(role) {
		return s.orders.ListAll(page, limit)
	}
	return s.orders.ListByUser(userID, page, limit)
}

// Find loads one order with its items. Customers can only see their own
// orders; anyone else's order is reported as missing, not forbidden.
func (s *OrderService) Find(orderID, userID uint, role string) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("order: load %d: %w", orderID, err)
	}
	if !models.IsStaff(role) && order.UserID != userID {
		return models.Order{}, ErrNotFound
	}
	return order, nil
}

// ChangeStatus moves an order to the next status. Only staff may change
// statuses. Transitions are forward-only; skipping ahead is allowed and a
// same-status change is an idempotent no-op. Backward moves and unknown
// statuses are rejected with ErrInvalidTransition.
func (s *OrderService) ChangeStatus(orderID uint, next, actorRole string) (models.Order, error) {
	if !models.IsStaff(actorRole) {
		return models.Order{}, ErrUnauthorized
	}
	if !models.ValidStatus(next) {
		return models.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}

	order, err := s.orders.FindByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("order: load %d: %w", orderID, err)
	}

	if order.Status == next {
		return order, nil
	}
	if !models.CanTransition(order.Status, next) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	if err := s.orders.UpdateStatus(orderID, next); err != nil {
		return models.Order{}, fmt.Errorf("order: update status: %w", err)
	}

	previous := order.Status
	order.Status = next

	metrics.StatusTransitions.WithLabelValues(next).Inc()
	logger.Info("order status changed",
		"order_id", order.ID, "from", previous, "to", next, "role", actorRole)
	event.Fire("order.status_changed", order)

	return order, nil
}
