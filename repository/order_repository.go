package repository

import (
	"time"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) FindByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderSummary is the listing projection: shallow display fields only.
type OrderSummary struct {
	ID            uint      `json:"id"`
	ConsumerID    uint      `json:"consumerId"`
	ConsumerName  string    `json:"consumerName"`
	ConsumerEmail string    `json:"consumerEmail"`
	ProviderID    uint      `json:"providerId"`
	BusinessName  string    `json:"businessName"`
	TotalAmount   int64     `json:"totalAmount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	DeliveryDate  time.Time `json:"deliveryDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderFilter scopes a listing; zero values are ignored. Exactly one of
// ConsumerID/ProviderID is set for non-admin callers.
type OrderFilter struct {
	ConsumerID uint
	ProviderID uint
	Status     string
}

func (r *OrderRepository) scoped(f OrderFilter) *gorm.DB {
	q := r.DB.Table("orders AS o").Where("o.deleted_at IS NULL")
	if f.ConsumerID != 0 {
		q = q.Where("o.consumer_id = ?", f.ConsumerID)
	}
	if f.ProviderID != 0 {
		q = q.Where("o.provider_id = ?", f.ProviderID)
	}
	if f.Status != "" {
		q = q.Where("o.status = ?", f.Status)
	}
	return q
}

func (r *OrderRepository) List(f OrderFilter, page, limit int) ([]OrderSummary, int64, error) {
	var total int64
	if err := r.scoped(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []OrderSummary
	err := r.scoped(f).
		Select(`o.id, o.consumer_id, u.name AS consumer_name, u.email AS consumer_email,
			o.provider_id, sp.business_name, o.total_amount, o.status, o.payment_status,
			o.delivery_date, o.created_at`).
		Joins("JOIN users u ON u.id = o.consumer_id").
		Joins("JOIN service_providers sp ON sp.id = o.provider_id").
		Order("o.id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Scan(&out).Error
	return out, total, err
}

// UpdateStatusGuard flips the status only when the order is still in the
// expected state; RowsAffected == 0 means a lost race or a stale client.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) UpdatePaymentStatus(orderID uint, status string) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).Update("payment_status", status).Error
}
