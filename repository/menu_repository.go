package repository

import (
	"time"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) Create(m *entity.Menu) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) FindByID(id uint) (*entity.Menu, error) {
	var m entity.Menu
	if err := r.DB.Preload("Items").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) ListByProvider(providerID uint, activeOnly bool) ([]entity.Menu, error) {
	q := r.DB.Preload("Items").Where("provider_id = ?", providerID)
	if activeOnly {
		now := time.Now()
		q = q.Where("is_active = ?", true).
			Where("valid_from <= ? AND valid_to >= ?", now, now)
	}
	var menus []entity.Menu
	err := q.Order("id DESC").Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Menu{}).Where("id = ?", id).Updates(updates).Error
}

// ---------------- Items (embedded rows, mutated individually) ----------------

func (r *MenuRepository) AddItem(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuRepository) FindItem(menuID, itemID uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.Where("id = ? AND menu_id = ?", itemID, menuID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) UpdateItem(menuID, itemID uint, updates map[string]any) error {
	return r.DB.Model(&entity.MenuItem{}).
		Where("id = ? AND menu_id = ?", itemID, menuID).
		Updates(updates).Error
}

func (r *MenuRepository) DeleteItem(menuID, itemID uint) error {
	return r.DB.Where("id = ? AND menu_id = ?", itemID, menuID).Delete(&entity.MenuItem{}).Error
}
