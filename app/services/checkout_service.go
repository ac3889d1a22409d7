package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ordena/ordena/app/jobs"
	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/config"
	"github.com/ordena/ordena/pkg/database"
	"github.com/ordena/ordena/pkg/event"
	"github.com/ordena/ordena/pkg/logger"
	"github.com/ordena/ordena/pkg/metrics"
	"github.com/ordena/ordena/pkg/queue"
	"gorm.io/gorm"
)

// CheckoutService converts a session's cart into a persisted order.
type CheckoutService struct {
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	carts    CartStore
}

func NewCheckoutService(carts CartStore) *CheckoutService {
	return &CheckoutService{
		products: repositories.NewProductRepository(),
		orders:   repositories.NewOrderRepository(),
		carts:    carts,
	}
}

// Checkout places an order from the cart held under sessionID.
//
// The order insert, every stock decrement, and every item insert run in
// one database transaction. The first line whose stock cannot cover its
// quantity aborts the whole transaction; stock and orders are left
// untouched and the cart is kept so the caller can adjust it. The cart
// is cleared only after the transaction commits.
//
// Totals: the subtotal comes from the cart's add-time price snapshots,
// while each order item records the product's price at checkout time.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, userID uint) (models.Order, error) {
	cart, err := s.carts.Get(sessionID)
	if err != nil {
		return models.Order{}, fmt.Errorf("checkout: load cart: %w", err)
	}
	if cart.Empty() {
		metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		return models.Order{}, ErrEmptyCart
	}

	subtotal := cart.Subtotal()
	tax := subtotal * config.TaxRate()
	order := models.Order{
		UserID:   userID,
		Status:   models.StatusPending,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orders.CreateTx(tx, &order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, line := range cart.Lines {
			product, err := s.products.FindByIDTx(tx, line.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("load product %d: %w", line.ProductID, err)
			}

			ok, err := s.products.DecrementStock(tx, line.ProductID, line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock for product %d: %w", line.ProductID, err)
			}
			if !ok {
				return &InsufficientStockError{Product: product.Name}
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			}
			if err := s.orders.CreateItemTx(tx, &item); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			order.Items = append(order.Items, item)
		}

		return nil
	})
	if err != nil {
		if IsInsufficientStock(err) {
			metrics.CheckoutsTotal.WithLabelValues("insufficient_stock").Inc()
			metrics.StockConflicts.Inc()
		} else {
			metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		}
		return models.Order{}, err
	}

	if err := s.carts.Clear(sessionID); err != nil {
		// The order is already committed; a stale cart is recoverable.
		logger.Warn("checkout: clear cart", "session_id", sessionID, "error", err)
	}

	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	logger.Info("order placed",
		"order_id", order.ID, "user_id", userID, "items", len(order.Items), "total", order.Total)

	event.Fire("order.placed", order)
	if err := queue.Dispatch(jobs.OrderPlacedJob{OrderID: order.ID}); err != nil {
		logger.Warn("checkout: dispatch order placed job", "order_id", order.ID, "error", err)
	}

	return order, nil
}
