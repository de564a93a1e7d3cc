package entity

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. delivered and cancelled are terminal.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing,
		OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func TerminalOrderStatus(s string) bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment methods.
const (
	MethodRazorpay = "razorpay"
	MethodCOD      = "cod"
)

type Order struct {
	gorm.Model
	ConsumerID uint `gorm:"not null;index" json:"consumerId"`
	Consumer   User `gorm:"foreignKey:ConsumerID" json:"-"`

	ProviderID uint            `gorm:"not null;index" json:"providerId"`
	Provider   ServiceProvider `gorm:"foreignKey:ProviderID" json:"-"`

	// Line items are a snapshot of the cart at checkout; name/price are
	// frozen here and never re-read from the live menu.
	Items []OrderItem `json:"items"`

	// Total in paise.
	TotalAmount int64 `gorm:"not null" json:"totalAmount"`

	Status          string    `gorm:"not null;default:pending;index" json:"status"`
	DeliveryAddress string    `gorm:"not null" json:"deliveryAddress"`
	DeliveryDate    time.Time `json:"deliveryDate"`
	PaymentStatus   string    `gorm:"not null;default:pending" json:"paymentStatus"`
	PaymentMethod   string    `gorm:"not null" json:"paymentMethod"`
	Notes           string    `json:"notes"`
}
