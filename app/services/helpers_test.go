package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupDB points the global handle at a fresh in-memory SQLite database.
// cache=shared keeps every pooled connection on the same database.
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

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))

	database.DB = db
}

func seedProduct(t *testing.T, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}

func seedUser(t *testing.T, email, role string) models.User {
	t.Helper()
	u := models.User{Name: "Test", Email: email, Password: "x", Role: role}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func currentStock(t *testing.T, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, database.DB.First(&p, id).Error)
	return p.Stock
}
