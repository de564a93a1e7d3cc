package repository

import (
	"time"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/gorm"
)

// AnalyticsRepository holds the read-only aggregations behind the dashboards
// and reports. No method here writes anything.
type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type MonthlyBucket struct {
	Month   string `json:"month"` // "2026-08"
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

type ProviderRevenue struct {
	ProviderID   uint   `json:"providerId"`
	BusinessName string `json:"businessName"`
	Orders       int64  `json:"orders"`
	Revenue      int64  `json:"revenue"`
}

type ItemQuantity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type CustomerSpend struct {
	ConsumerID uint   `json:"consumerId"`
	Name       string `json:"name"`
	Orders     int64  `json:"orders"`
	Spend      int64  `json:"spend"`
}

func (r *AnalyticsRepository) CountUsers() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountProviders() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.ServiceProvider{}).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountOrders(providerID uint) (int64, error) {
	q := r.DB.Model(&entity.Order{})
	if providerID != 0 {
		q = q.Where("provider_id = ?", providerID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountOrdersSince(since time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

// TotalRevenue sums paid orders, optionally per provider. Paise.
func (r *AnalyticsRepository) TotalRevenue(providerID uint) (int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("payment_status = ?", entity.PaymentPaid)
	if providerID != 0 {
		q = q.Where("provider_id = ?", providerID)
	}
	var row struct{ Total int64 }
	err := q.Select("COALESCE(SUM(total_amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (r *AnalyticsRepository) OrdersByStatus(providerID uint) ([]StatusCount, error) {
	q := r.DB.Model(&entity.Order{})
	if providerID != 0 {
		q = q.Where("provider_id = ?", providerID)
	}
	var out []StatusCount
	err := q.Select("status, COUNT(*) AS count").Group("status").Scan(&out).Error
	return out, err
}

func (r *AnalyticsRepository) UsersByRole() ([]RoleCount, error) {
	var out []RoleCount
	err := r.DB.Model(&entity.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&out).Error
	return out, err
}

// MonthlyOrders buckets orders and paid revenue per calendar month over the
// trailing `months` window.
func (r *AnalyticsRepository) MonthlyOrders(providerID uint, months int) ([]MonthlyBucket, error) {
	since := time.Now().AddDate(0, -months, 0)
	q := r.DB.Model(&entity.Order{}).Where("created_at >= ?", since)
	if providerID != 0 {
		q = q.Where("provider_id = ?", providerID)
	}
	var out []MonthlyBucket
	err := q.Select(`strftime('%Y-%m', created_at) AS month,
			COUNT(*) AS orders,
			COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN total_amount ELSE 0 END), 0) AS revenue`).
		Group("month").
		Order("month").
		Scan(&out).Error
	return out, err
}

func (r *AnalyticsRepository) TopProvidersByRevenue(n int) ([]ProviderRevenue, error) {
	var out []ProviderRevenue
	err := r.DB.Table("orders AS o").
		Select("o.provider_id, sp.business_name, COUNT(*) AS orders, COALESCE(SUM(o.total_amount), 0) AS revenue").
		Joins("JOIN service_providers sp ON sp.id = o.provider_id").
		Where("o.payment_status = ? AND o.deleted_at IS NULL", entity.PaymentPaid).
		Group("o.provider_id, sp.business_name").
		Order("revenue DESC").
		Limit(n).
		Scan(&out).Error
	return out, err
}

func (r *AnalyticsRepository) TopItemsByQuantity(providerID uint, n int) ([]ItemQuantity, error) {
	q := r.DB.Table("order_items AS oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.status != ? AND oi.deleted_at IS NULL", entity.OrderCancelled)
	if providerID != 0 {
		q = q.Where("o.provider_id = ?", providerID)
	}
	var out []ItemQuantity
	err := q.Select("oi.name, SUM(oi.quantity) AS quantity").
		Group("oi.name").
		Order("quantity DESC").
		Limit(n).
		Scan(&out).Error
	return out, err
}

func (r *AnalyticsRepository) TopCustomersBySpend(n int) ([]CustomerSpend, error) {
	var out []CustomerSpend
	err := r.DB.Table("orders AS o").
		Select("o.consumer_id, u.name, COUNT(*) AS orders, COALESCE(SUM(o.total_amount), 0) AS spend").
		Joins("JOIN users u ON u.id = o.consumer_id").
		Where("o.payment_status = ? AND o.deleted_at IS NULL", entity.PaymentPaid).
		Group("o.consumer_id, u.name").
		Order("spend DESC").
		Limit(n).
		Scan(&out).Error
	return out, err
}

// AverageOrderValue over non-cancelled orders, in paise. 0 when empty.
func (r *AnalyticsRepository) AverageOrderValue(providerID uint) (int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("status != ?", entity.OrderCancelled)
	if providerID != 0 {
		q = q.Where("provider_id = ?", providerID)
	}
	var row struct{ Avg float64 }
	if err := q.Select("COALESCE(AVG(total_amount), 0) AS avg").Scan(&row).Error; err != nil {
		return 0, err
	}
	return int64(row.Avg), nil
}

func (r *AnalyticsRepository) RecentOrders(providerID uint, n int) ([]OrderSummary, error) {
	q := r.DB.Table("orders AS o").Where("o.deleted_at IS NULL")
	if providerID != 0 {
		q = q.Where("o.provider_id = ?", providerID)
	}
	var out []OrderSummary
	err := q.Select(`o.id, o.consumer_id, u.name AS consumer_name, u.email AS consumer_email,
			o.provider_id, sp.business_name, o.total_amount, o.status, o.payment_status,
			o.delivery_date, o.created_at`).
		Joins("JOIN users u ON u.id = o.consumer_id").
		Joins("JOIN service_providers sp ON sp.id = o.provider_id").
		Order("o.id DESC").
		Limit(n).
		Scan(&out).Error
	return out, err
}
