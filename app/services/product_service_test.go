package services_test

import (
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/app/services"
	"github.com/stretchr/testify/require"
)

func TestProductCreateDefaultsToActive(t *testing.T) {
	setupDB(t)
	svc := services.NewProductService()

	product, err := svc.Create(services.ProductInput{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10})
	require.NoError(t, err)
	require.True(t, product.Active)

	inactive := false
	product, err = svc.Create(services.ProductInput{Name: "Retired grinder", Price: 80, Active: &inactive})
	require.NoError(t, err)
	require.False(t, product.Active)
}

func TestProductFindNotFound(t *testing.T) {
	setupDB(t)
	svc := services.NewProductService()

	_, err := svc.Find(999)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductListFilters(t *testing.T) {
	setupDB(t)
	svc := services.NewProductService()

	seedProduct(t, models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10, Category: "coffee", Active: true})
	seedProduct(t, models.Product{Name: "Decaf blend 500g", Price: 12.00, Stock: 5, Category: "coffee", Active: true})
	seedProduct(t, models.Product{Name: "Ceramic dripper", Price: 22.00, Stock: 3, Category: "accessories", Active: true})

	byCategory, _, err := svc.List(repositories.ProductFilter{Category: "coffee"})
	require.NoError(t, err)
	require.Len(t, byCategory, 2)

	bySearch, _, err := svc.List(repositories.ProductFilter{Search: "dripper"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	require.Equal(t, "Ceramic dripper", bySearch[0].Name)

	byPrice, _, err := svc.List(repositories.ProductFilter{MinPrice: 15, MaxPrice: 20})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	require.Equal(t, "Espresso beans 1kg", byPrice[0].Name)
}

func TestProductCategoriesDeduplicated(t *testing.T) {
	setupDB(t)
	svc := services.NewProductService()

	seedProduct(t, models.Product{Name: "Espresso beans 1kg", Category: "coffee", Active: true})
	seedProduct(t, models.Product{Name: "Decaf blend 500g", Category: "coffee", Active: true})
	seedProduct(t, models.Product{Name: "Ceramic dripper", Category: "accessories", Active: true})
	seedProduct(t, models.Product{Name: "Gift card", Category: "", Active: true})

	categories, err := svc.Categories()
	require.NoError(t, err)
	require.Equal(t, []string{"accessories", "coffee"}, categories)
}

func TestProductUpdateAndDelete(t *testing.T) {
	setupDB(t)
	svc := services.NewProductService()

	created, err := svc.Create(services.ProductInput{Name: "Espresso beans 1kg", Price: 18.50, Stock: 10})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, services.ProductInput{Name: "Espresso beans 2kg", Price: 34.00, Stock: 6})
	require.NoError(t, err)
	require.Equal(t, "Espresso beans 2kg", updated.Name)
	require.Equal(t, 6, updated.Stock)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Find(created.ID)
	require.ErrorIs(t, err, services.ErrNotFound)
}
