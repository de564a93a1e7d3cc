package entity

import (
	"gorm.io/gorm"
)

// Menu item categories.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnack     = "snack"
	CategoryBeverage  = "beverage"
	CategoryDessert   = "dessert"
)

func ValidMenuCategory(c string) bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner,
		CategorySnack, CategoryBeverage, CategoryDessert:
		return true
	}
	return false
}

type MenuItem struct {
	gorm.Model
	MenuID uint `gorm:"not null;index" json:"menuId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Price in paise (minor currency units).
	Price int64 `gorm:"not null" json:"price"`

	Category     string `gorm:"not null" json:"category"`
	IsVegetarian bool   `gorm:"not null;default:false" json:"isVegetarian"`
	IsAvailable  bool   `gorm:"not null;default:true" json:"isAvailable"`
	ImageURL     string `json:"imageUrl"`
}
