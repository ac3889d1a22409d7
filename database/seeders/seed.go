package seeders

import (
	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("users", SeedUsers)
	Register("products", SeedProducts)
}

// SeedUsers inserts one account per role. Idempotent: existing emails
// are left alone.
func SeedUsers(db *gorm.DB) error {
	users := []struct {
		name, email, password, role string
	}{
		{"Admin", "admin@local", "admin12345", models.RoleAdmin},
		{"Employee", "employee@local", "employee12345", models.RoleEmployee},
		{"Customer", "customer@local", "customer12345", models.RoleCustomer},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", u.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		if err := db.Create(&models.User{
			Name: u.name, Email: u.email, Password: hash, Role: u.role,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a small demo catalog when the table is empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Espresso beans 1kg", Description: "Dark roast arabica", Price: 18.50, Stock: 40, Category: "coffee", Active: true},
		{Name: "Filter paper pack", Description: "100 bleached filters", Price: 4.25, Stock: 120, Category: "accessories", Active: true},
		{Name: "Ceramic dripper", Description: "V-shaped pour-over cone", Price: 22.00, Stock: 15, Category: "accessories", Active: true},
		{Name: "Cold brew bottle", Description: "1L glass bottle with mesh", Price: 29.90, Stock: 8, Category: "equipment", Active: true},
		{Name: "Decaf blend 500g", Description: "Swiss water process", Price: 12.00, Stock: 25, Category: "coffee", Active: true},
	}
	return db.Create(&products).Error
}
