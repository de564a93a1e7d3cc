package configs

import (
	"log"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is shared with the auth service; 12 rounds.
const BcryptCost = 12

// SeedAdmin creates the back-office account on first boot.
func SeedAdmin(cfg *Config) error {
	db := DB()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", cfg.AdminEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), BcryptCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Name:     "Admin",
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     entity.RoleAdmin,
		IsActive: true,
	}
	return db.Create(&admin).Error
}
