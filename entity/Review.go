package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	ConsumerID uint `gorm:"not null;uniqueIndex:idx_review_consumer_order" json:"consumerId"`
	Consumer   User `gorm:"foreignKey:ConsumerID" json:"-"`

	ProviderID uint            `gorm:"not null;index" json:"providerId"`
	Provider   ServiceProvider `gorm:"foreignKey:ProviderID" json:"-"`

	// One review per order per consumer.
	OrderID uint  `gorm:"not null;uniqueIndex:idx_review_consumer_order" json:"orderId"`
	Order   Order `json:"-"`

	Rating     int    `gorm:"not null" json:"rating"` // 1..5
	Comment    string `json:"comment"`
	IsVerified bool   `gorm:"not null;default:false" json:"isVerified"`
}
