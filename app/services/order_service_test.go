package services_test

import (
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/database"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, userID uint, status string) models.Order {
	t.Helper()
	order := models.Order{UserID: userID, Status: status, Subtotal: 10, Total: 10}
	require.NoError(t, database.DB.Create(&order).Error)
	return order
}

func TestChangeStatusForward(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	user := seedUser(t, "buyer@local", models.RoleCustomer)
	order := seedOrder(t, user.ID, models.StatusPending)

	updated, err := svc.ChangeStatus(order.ID, models.StatusProcessed, models.RoleEmployee)
	require.NoError(t, err)
	require.Equal(t, models.StatusProcessed, updated.Status)

	// Skipping ahead is allowed.
	updated, err = svc.ChangeStatus(order.ID, models.StatusDelivered, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.StatusDelivered, updated.Status)

	reloaded, err := svc.Find(order.ID, user.ID, models.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, models.StatusDelivered, reloaded.Status)
}

func TestChangeStatusSameStatusIsNoOp(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	user := seedUser(t, "buyer@local", models.RoleCustomer)
	order := seedOrder(t, user.ID, models.StatusShipped)

	updated, err := svc.ChangeStatus(order.ID, models.StatusShipped, models.RoleEmployee)
	require.NoError(t, err)
	require.Equal(t, models.StatusShipped, updated.Status)
}

func TestChangeStatusBackwardRejected(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	user := seedUser(t, "buyer@local", models.RoleCustomer)
	order := seedOrder(t, user.ID, models.StatusShipped)

	_, err := svc.ChangeStatus(order.ID, models.StatusPending, models.RoleEmployee)
	require.ErrorIs(t, err, services.ErrInvalidTransition)

	reloaded, err := svc.Find(order.ID, user.ID, models.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, models.StatusShipped, reloaded.Status)
}

func TestChangeStatusUnknownStatusRejected(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	user := seedUser(t, "buyer@local", models.RoleCustomer)
	order := seedOrder(t, user.ID, models.StatusPending)

	_, err := svc.ChangeStatus(order.ID, "cancelled", models.RoleAdmin)
	require.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestChangeStatusRequiresStaff(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	user := seedUser(t, "buyer@local", models.RoleCustomer)
	order := seedOrder(t, user.ID, models.StatusPending)

	_, err := svc.ChangeStatus(order.ID, models.StatusProcessed, models.RoleCustomer)
	require.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestFindHidesOtherUsersOrders(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	owner := seedUser(t, "owner@local", models.RoleCustomer)
	other := seedUser(t, "other@local", models.RoleCustomer)
	order := seedOrder(t, owner.ID, models.StatusPending)

	// The other customer gets a not-found, not a forbidden.
	_, err := svc.Find(order.ID, other.ID, models.RoleCustomer)
	require.ErrorIs(t, err, services.ErrNotFound)

	// Staff see everything.
	found, err := svc.Find(order.ID, other.ID, models.RoleEmployee)
	require.NoError(t, err)
	require.Equal(t, order.ID, found.ID)
}

func TestListScopesByRole(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	alice := seedUser(t, "alice@local", models.RoleCustomer)
	bob := seedUser(t, "bob@local", models.RoleCustomer)
	seedOrder(t, alice.ID, models.StatusPending)
	seedOrder(t, bob.ID, models.StatusPending)
	seedOrder(t, bob.ID, models.StatusShipped)

	mine, _, err := svc.List(alice.ID, models.RoleCustomer, 1, 20)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, pagination, err := svc.List(alice.ID, models.RoleAdmin, 1, 20)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.EqualValues(t, 3, pagination.Total)
}
