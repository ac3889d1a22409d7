package models

import "gorm.io/gorm"

// Product represents a product in the catalogue.
//
// Stock is the authoritative count available for sale. It is mutated by
// staff CRUD and by the checkout's conditional decrement, and must never
// go negative.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text"              json:"description"`
	Price       float64 `gorm:"not null;default:0"     json:"price"`
	Stock       int     `gorm:"not null;default:0"     json:"stock"`
	Category    string  `gorm:"size:100;index"         json:"category"`
	ImagePath   string  `gorm:"size:255"               json:"image_path"`
	// No default tag: GORM would skip a false value on insert and the
	// database default would silently re-activate the product.
	Active bool `gorm:"not null" json:"active"`
}
