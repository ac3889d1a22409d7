package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/cache"
	"github.com/ordena/ordena/pkg/database"
	"github.com/stretchr/testify/require"
)

func TestCheckoutEmptyCart(t *testing.T) {
	setupDB(t)
	store := services.NewMemoryCartStore()
	svc := services.NewCheckoutService(store)

	_, err := svc.Checkout(context.Background(), "sess-1", 1)
	require.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCheckoutSuccess(t *testing.T) {
	setupDB(t)
	store := services.NewMemoryCartStore()
	carts := services.NewCartService(store)
	svc := services.NewCheckoutService(store)
	user := seedUser(t, "buyer@local", models.RoleCustomer)

	beans := seedProduct(t, models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10, Active: true})
	dripper := seedProduct(t, models.Product{Name: "Ceramic dripper", Price: 22.00, Stock: 3, Active: true})

	_, err := carts.Add("sess-1", beans.ID, 2)
	require.NoError(t, err)
	_, err = carts.Add("sess-1", dripper.ID, 1)
	require.NoError(t, err)

	order, err := svc.Checkout(context.Background(), "sess-1", user.ID)
	require.NoError(t, err)

	require.NotZero(t, order.ID)
	require.Equal(t, models.StatusPending, order.Status)
	require.Equal(t, user.ID, order.UserID)
	require.InDelta(t, 18.50*2+22.00, order.Subtotal, 0.001)
	require.InDelta(t, order.Subtotal+order.Tax, order.Total, 0.001)
	require.Len(t, order.Items, 2)

	// Stock was decremented and the cart cleared.
	require.Equal(t, 8, currentStock(t, beans.ID))
	require.Equal(t, 2, currentStock(t, dripper.ID))

	cart, err := store.Get("sess-1")
	require.NoError(t, err)
	require.True(t, cart.Empty())
}

func TestCheckoutItemsSnapshotCurrentPrice(t *testing.T) {
	setupDB(t)
	store := services.NewMemoryCartStore()
	carts := services.NewCartService(store)
	svc := services.NewCheckoutService(store)
	user := seedUser(t, "buyer@local", models.RoleCustomer)

	beans := seedProduct(t, models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10, Active: true})
	_, err := carts.Add("sess-1", beans.ID, 1)
	require.NoError(t, err)

	// Price changes while the cart sits idle. The cart keeps its add-time
	// snapshot for the subtotal, the order item records the current price.
	require.NoError(t, database.DB.Model(&models.Product{}).
		Where("id = ?", beans.ID).
		UpdateColumn("price", 20.00).Error)

	order, err := svc.Checkout(context.Background(), "sess-1", user.ID)
	require.NoError(t, err)
	require.InDelta(t, 18.50, order.Subtotal, 0.001)
	require.InDelta(t, 20.00, order.Items[0].UnitPrice, 0.001)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	setupDB(t)
	store := services.NewMemoryCartStore()
	carts := services.NewCartService(store)
	svc := services.NewCheckoutService(store)
	user := seedUser(t, "buyer@local", models.RoleCustomer)

	beans := seedProduct(t, models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10, Active: true})
	bottle := seedProduct(t, models.Product{Name: "Cold brew bottle", Price: 29.90, Stock: 1, Active: true})

	_, err := carts.Add("sess-1", beans.ID, 2)
	require.NoError(t, err)
	_, err = carts.Add("sess-1", bottle.ID, 5)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), "sess-1", user.ID)
	require.True(t, services.IsInsufficientStock(err), "expected insufficient stock, got %v", err)

	var stockErr *services.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Equal(t, "Cold brew bottle", stockErr.Product)

	// The whole transaction rolled back: no orders, no decrements.
	var orderCount int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)
	require.Equal(t, 10, currentStock(t, beans.ID))
	require.Equal(t, 1, currentStock(t, bottle.ID))

	// The cart survives so the caller can adjust quantities.
	cart, err := store.Get("sess-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
}

func TestCheckoutLastUnit(t *testing.T) {
	setupDB(t)
	store := services.NewMemoryCartStore()
	carts := services.NewCartService(store)
	svc := services.NewCheckoutService(store)
	user := seedUser(t, "buyer@local", models.RoleCustomer)

	bottle := seedProduct(t, models.Product{Name: "Cold brew bottle", Price: 29.90, Stock: 1, Active: true})

	// Two sessions both hold the last unit.
	_, err := carts.Add("sess-a", bottle.ID, 1)
	require.NoError(t, err)
	_, err = carts.Add("sess-b", bottle.ID, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), "sess-a", user.ID)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), "sess-b", user.ID)
	require.True(t, services.IsInsufficientStock(err), "expected insufficient stock, got %v", err)

	require.Equal(t, 0, currentStock(t, bottle.ID))

	var orderCount int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.EqualValues(t, 1, orderCount)
}

func TestCheckoutConcurrentLastUnit(t *testing.T) {
	setupDB(t)
	store := services.NewMemoryCartStore()
	carts := services.NewCartService(store)
	svc := services.NewCheckoutService(store)
	user := seedUser(t, "buyer@local", models.RoleCustomer)

	bottle := seedProduct(t, models.Product{Name: "Cold brew bottle", Price: 29.90, Stock: 1, Active: true})

	sessions := []string{"sess-a", "sess-b"}
	for _, sess := range sessions {
		_, err := carts.Add(sess, bottle.ID, 1)
		require.NoError(t, err)
	}

	// Both checkouts race for the single unit. The conditional decrement
	// decides the winner; the loser must see insufficient stock, never a
	// negative stock level or a second order.
	errs := make([]error, len(sessions))
	var wg sync.WaitGroup
	for i, sess := range sessions {
		wg.Add(1)
		go func(i int, sess string) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(context.Background(), sess, user.ID)
		}(i, sess)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case services.IsInsufficientStock(err):
			lost++
		default:
			t.Fatalf("unexpected checkout error: %v", err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, 1, lost)
	require.Equal(t, 0, currentStock(t, bottle.ID))

	var orderCount int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.EqualValues(t, 1, orderCount)
}

func TestCheckoutCartBackendUnavailable(t *testing.T) {
	setupDB(t)

	// The default Redis-backed store with no Redis connection. An
	// unreachable cart backend must not read as an empty cart.
	require.Nil(t, cache.RDB)
	svc := services.NewCheckoutService(services.NewCartStore())

	_, err := svc.Checkout(context.Background(), "sess-1", 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, services.ErrEmptyCart)
	require.ErrorIs(t, err, cache.ErrUnavailable)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	setupDB(t)
	store := services.NewMemoryCartStore()
	svc := services.NewCheckoutService(store)

	// Line for a product that was deleted after being added to the cart.
	require.NoError(t, store.Put("sess-1", models.Cart{Lines: []models.CartLine{
		{ProductID: 42, Name: "Ghost", UnitPrice: 1, Quantity: 1},
	}}))

	_, err := svc.Checkout(context.Background(), "sess-1", 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}
