package entity

import (
	"gorm.io/gorm"
)

type ServiceProvider struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
	User   User `json:"-"`

	BusinessName  string     `gorm:"not null" json:"businessName"`
	Description   string     `json:"description"`
	Cuisine       StringList `gorm:"type:text" json:"cuisine"`
	DeliveryAreas StringList `gorm:"type:text" json:"deliveryAreas"`

	// Derived: mean of review ratings rounded to 1 decimal, and lifetime
	// order count. Recomputed by the review/order services.
	Rating      float64 `gorm:"not null;default:0" json:"rating"`
	TotalOrders int64   `gorm:"not null;default:0" json:"totalOrders"`

	IsVerified bool `gorm:"not null;default:false" json:"isVerified"`
	IsActive   bool `gorm:"not null;default:true" json:"isActive"`

	// Operating hours as "HH:MM" time-of-day strings.
	OpeningTime string `gorm:"not null;default:'09:00'" json:"openingTime"`
	ClosingTime string `gorm:"not null;default:'21:00'" json:"closingTime"`

	Menus   []Menu   `gorm:"foreignKey:ProviderID" json:"-"`
	Orders  []Order  `gorm:"foreignKey:ProviderID" json:"-"`
	Reviews []Review `gorm:"foreignKey:ProviderID" json:"-"`
}
