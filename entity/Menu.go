package entity

import (
	"time"

	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	ProviderID uint            `gorm:"not null;index" json:"providerId"`
	Provider   ServiceProvider `json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Validity window for the menu (e.g. this week's tiffin plan).
	ValidFrom time.Time `json:"validFrom"`
	ValidTo   time.Time `json:"validTo"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`

	Items []MenuItem `json:"items"`
}
