package services_test

import (
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/services"
	"github.com/stretchr/testify/require"
)

func TestCartAddAndMerge(t *testing.T) {
	setupDB(t)
	store := services.NewMemoryCartStore()
	svc := services.NewCartService(store)

	beans := seedProduct(t, models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10, Active: true})

	view, err := svc.Add("sess-1", beans.ID, 2)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, 2, view.Lines[0].Quantity)

	view, err = svc.Add("sess-1", beans.ID, 3)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, 5, view.Lines[0].Quantity)
	require.InDelta(t, 18.50*5, view.Subtotal, 0.001)
}

func TestCartAddUnknownProduct(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService(services.NewMemoryCartStore())

	_, err := svc.Add("sess-1", 999, 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartAddInactiveProduct(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService(services.NewMemoryCartStore())

	retired := seedProduct(t, models.Product{Name: "Retired grinder", Price: 80, Stock: 2, Active: false})

	_, err := svc.Add("sess-1", retired.ID, 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartUpdateQuantity(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService(services.NewMemoryCartStore())

	beans := seedProduct(t, models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10, Active: true})
	_, err := svc.Add("sess-1", beans.ID, 2)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity("sess-1", beans.ID, 7)
	require.NoError(t, err)
	require.Equal(t, 7, view.Lines[0].Quantity)

	// Quantity 0 removes the line.
	view, err = svc.UpdateQuantity("sess-1", beans.ID, 0)
	require.NoError(t, err)
	require.Empty(t, view.Lines)

	_, err = svc.UpdateQuantity("sess-1", beans.ID, 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartViewIsolatedPerSession(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService(services.NewMemoryCartStore())

	beans := seedProduct(t, models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10, Active: true})
	_, err := svc.Add("sess-a", beans.ID, 1)
	require.NoError(t, err)

	view, err := svc.View("sess-b")
	require.NoError(t, err)
	require.Empty(t, view.Lines)
	require.Zero(t, view.Total)
}

func TestCartClear(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService(services.NewMemoryCartStore())

	beans := seedProduct(t, models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10, Active: true})
	_, err := svc.Add("sess-1", beans.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear("sess-1"))

	view, err := svc.View("sess-1")
	require.NoError(t, err)
	require.Empty(t, view.Lines)
}
