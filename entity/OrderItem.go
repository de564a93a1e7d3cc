package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint `gorm:"not null;index" json:"orderId"`

	// MenuItemID references the item the snapshot was taken from; the row
	// keeps its own copy of name/price so later menu edits never change
	// what was ordered.
	MenuItemID uint   `json:"menuItemId"`
	Name       string `gorm:"not null" json:"name"`
	Price      int64  `gorm:"not null" json:"price"`
	Quantity   int    `gorm:"not null" json:"quantity"`
}
