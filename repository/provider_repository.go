package repository

import (
	"math"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/gorm"
)

type ProviderRepository struct {
	DB *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{DB: db}
}

func (r *ProviderRepository) Create(tx *gorm.DB, p *entity.ServiceProvider) error {
	return tx.Create(p).Error
}

func (r *ProviderRepository) FindByID(id uint) (*entity.ServiceProvider, error) {
	var p entity.ServiceProvider
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepository) FindByUserID(userID uint) (*entity.ServiceProvider, error) {
	var p entity.ServiceProvider
	if err := r.DB.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ProviderFilter narrows the public provider listing.
type ProviderFilter struct {
	Cuisine   string
	Area      string
	Verified  *bool
	MinRating float64
}

func (r *ProviderRepository) List(f ProviderFilter, page, limit int) ([]entity.ServiceProvider, int64, error) {
	q := r.DB.Model(&entity.ServiceProvider{}).Where("is_active = ?", true)
	if f.Cuisine != "" {
		// Tags are stored as a JSON array in a text column.
		q = q.Where("cuisine LIKE ?", "%\""+f.Cuisine+"\"%")
	}
	if f.Area != "" {
		q = q.Where("delivery_areas LIKE ?", "%\""+f.Area+"\"%")
	}
	if f.Verified != nil {
		q = q.Where("is_verified = ?", *f.Verified)
	}
	if f.MinRating > 0 {
		q = q.Where("rating >= ?", f.MinRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var providers []entity.ServiceProvider
	err := q.Order("rating DESC, id DESC").Limit(limit).Offset((page - 1) * limit).Find(&providers).Error
	return providers, total, err
}

func (r *ProviderRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.ServiceProvider{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ProviderRepository) SetVerified(id uint, verified bool) error {
	return r.DB.Model(&entity.ServiceProvider{}).Where("id = ?", id).Update("is_verified", verified).Error
}

func (r *ProviderRepository) DeleteByUserID(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&entity.ServiceProvider{}).Error
}

// RecomputeRating sets rating to the mean of all review ratings for the
// provider, rounded to one decimal place. No reviews leaves it at 0.
func (r *ProviderRepository) RecomputeRating(tx *gorm.DB, providerID uint) error {
	var row struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&entity.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Scan(&row).Error; err != nil {
		return err
	}

	rating := 0.0
	if row.Count > 0 {
		rating = math.Round(row.Avg*10) / 10
	}
	return tx.Model(&entity.ServiceProvider{}).
		Where("id = ?", providerID).
		Update("rating", rating).Error
}

// RecountTotalOrders keeps the derived order counter in step after an order
// is created.
func (r *ProviderRepository) RecountTotalOrders(tx *gorm.DB, providerID uint) error {
	var count int64
	if err := tx.Model(&entity.Order{}).
		Where("provider_id = ?", providerID).
		Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&entity.ServiceProvider{}).
		Where("id = ?", providerID).
		Update("total_orders", count).Error
}
