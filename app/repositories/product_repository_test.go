package repositories_test

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection serialises concurrent writers at the database, so
	// racing goroutines contend in the application instead of hitting
	// SQLITE_BUSY.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}))
	database.DB = db
}

func stockOf(t *testing.T, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, database.DB.First(&p, id).Error)
	return p.Stock
}

// Many goroutines race the conditional decrement for the same rows.
// Exactly stock-many may win; stock never goes negative.
func TestDecrementStockConcurrent(t *testing.T) {
	setupDB(t)
	repo := repositories.NewProductRepository()

	p := models.Product{Name: "Espresso beans 1kg", Price: 18.50, Stock: 5, Active: true}
	require.NoError(t, database.DB.Create(&p).Error)

	const contenders = 20
	var successes atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.DecrementStock(database.DB, p.ID, 1)
			if err == nil && ok {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 5, successes.Load())
	require.Equal(t, 0, stockOf(t, p.ID))
}

func TestDecrementStockConcurrentMixedQuantities(t *testing.T) {
	setupDB(t)
	repo := repositories.NewProductRepository()

	p := models.Product{Name: "Ceramic dripper", Price: 22.00, Stock: 7, Active: true}
	require.NoError(t, database.DB.Create(&p).Error)

	quantities := []int{3, 3, 3, 2, 2, 2, 1, 1}
	var taken atomic.Int32
	var wg sync.WaitGroup
	for _, qty := range quantities {
		wg.Add(1)
		go func(qty int) {
			defer wg.Done()
			ok, err := repo.DecrementStock(database.DB, p.ID, qty)
			if err == nil && ok {
				taken.Add(int32(qty))
			}
		}(qty)
	}
	wg.Wait()

	final := stockOf(t, p.ID)
	require.GreaterOrEqual(t, final, 0)
	require.EqualValues(t, 7-final, taken.Load())
}

func TestDecrementStockInsufficient(t *testing.T) {
	setupDB(t)
	repo := repositories.NewProductRepository()

	p := models.Product{Name: "Cold brew bottle", Price: 29.90, Stock: 2, Active: true}
	require.NoError(t, database.DB.Create(&p).Error)

	ok, err := repo.DecrementStock(database.DB, p.ID, 3)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 2, stockOf(t, p.ID))
}
