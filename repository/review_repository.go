package repository

import (
	"time"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(tx *gorm.DB, rev *entity.Review) error {
	return tx.Create(rev).Error
}

func (r *ReviewRepository) FindByID(id uint) (*entity.Review, error) {
	var rev entity.Review
	if err := r.DB.First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

// ExistsForOrder enforces the one-review-per-order-per-consumer constraint
// before hitting the unique index.
func (r *ReviewRepository) ExistsForOrder(consumerID, orderID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Review{}).
		Where("consumer_id = ? AND order_id = ?", consumerID, orderID).
		Count(&count).Error
	return count > 0, err
}

// ReviewSummary joins the reviewer's display name for listings.
type ReviewSummary struct {
	ID           uint      `json:"id"`
	ConsumerID   uint      `json:"consumerId"`
	ConsumerName string    `json:"consumerName"`
	ProviderID   uint      `json:"providerId"`
	OrderID      uint      `json:"orderId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *ReviewRepository) ListByProvider(providerID uint, page, limit int) ([]ReviewSummary, int64, error) {
	var total int64
	if err := r.DB.Model(&entity.Review{}).
		Where("provider_id = ?", providerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []ReviewSummary
	err := r.DB.Table("reviews AS rv").
		Select("rv.id, rv.consumer_id, u.name AS consumer_name, rv.provider_id, rv.order_id, rv.rating, rv.comment, rv.is_verified, rv.created_at").
		Joins("JOIN users u ON u.id = rv.consumer_id").
		Where("rv.provider_id = ? AND rv.deleted_at IS NULL", providerID).
		Order("rv.id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Scan(&out).Error
	return out, total, err
}

func (r *ReviewRepository) ListAll(page, limit int) ([]ReviewSummary, int64, error) {
	var total int64
	if err := r.DB.Model(&entity.Review{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []ReviewSummary
	err := r.DB.Table("reviews AS rv").
		Select("rv.id, rv.consumer_id, u.name AS consumer_name, rv.provider_id, rv.order_id, rv.rating, rv.comment, rv.is_verified, rv.created_at").
		Joins("JOIN users u ON u.id = rv.consumer_id").
		Where("rv.deleted_at IS NULL").
		Order("rv.id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Scan(&out).Error
	return out, total, err
}

// Delete is admin-only; the provider rating is recomputed by the caller.
func (r *ReviewRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.Review{}, id).Error
}

// RatingHistogram returns review counts per rating bucket 1..5.
func (r *ReviewRepository) RatingHistogram(providerID uint) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	if err := r.DB.Model(&entity.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	hist := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		hist[row.Rating] = row.Count
	}
	return hist, nil
}
