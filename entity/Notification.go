package entity

import (
	"gorm.io/gorm"
)

// Notification types.
const (
	NotifyOrder     = "order"
	NotifyPayment   = "payment"
	NotifySystem    = "system"
	NotifyPromotion = "promotion"
)

func ValidNotificationType(t string) bool {
	switch t {
	case NotifyOrder, NotifyPayment, NotifySystem, NotifyPromotion:
		return true
	}
	return false
}

type Notification struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `json:"-"`

	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"not null" json:"message"`
	Type    string `gorm:"not null;default:system" json:"type"`
	IsRead  bool   `gorm:"not null;default:false;index" json:"isRead"`

	// Opaque payload for the client (order id, provider id, ...), raw JSON.
	Data string `gorm:"type:text" json:"data"`
}
