package repository

import (
	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

// Update applies an allow-listed partial update built by the caller.
func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) Delete(tx *gorm.DB, id uint) error {
	// Hard delete: account deletion is permanent.
	return tx.Unscoped().Delete(&entity.User{}, id).Error
}

// IncrementTokenVersion stales every previously issued session token.
func (r *UserRepository) IncrementTokenVersion(id uint) error {
	return r.DB.Model(&entity.User{}).
		Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1")).Error
}

func (r *UserRepository) List(role string, active *bool, page, limit int) ([]entity.User, int64, error) {
	q := r.DB.Model(&entity.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := q.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

// ---------------- Favorites ----------------

func (r *UserRepository) AddFavorite(userID, providerID uint) error {
	return r.DB.Model(&entity.User{Model: gorm.Model{ID: userID}}).
		Association("Favorites").
		Append(&entity.ServiceProvider{Model: gorm.Model{ID: providerID}})
}

func (r *UserRepository) RemoveFavorite(userID, providerID uint) error {
	return r.DB.Model(&entity.User{Model: gorm.Model{ID: userID}}).
		Association("Favorites").
		Delete(&entity.ServiceProvider{Model: gorm.Model{ID: providerID}})
}

func (r *UserRepository) ListFavorites(userID uint) ([]entity.ServiceProvider, error) {
	var favs []entity.ServiceProvider
	err := r.DB.Model(&entity.User{Model: gorm.Model{ID: userID}}).
		Association("Favorites").
		Find(&favs)
	return favs, err
}

// ---------------- Settings ----------------

func (r *UserRepository) SaveSettings(userID uint, raw string) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).Update("settings", raw).Error
}

func (r *UserRepository) FindSettings(userID uint) (string, error) {
	var row struct{ Settings string }
	err := r.DB.Model(&entity.User{}).Select("settings").Where("id = ?", userID).First(&row).Error
	return row.Settings, err
}

// ---------------- Fan-out targets ----------------

func (r *UserRepository) FindAdminIDs() ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.User{}).
		Where("role = ? AND is_active = ?", entity.RoleAdmin, true).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepository) FindActiveUserIDs() ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.User{}).Where("is_active = ?", true).Pluck("id", &ids).Error
	return ids, err
}
