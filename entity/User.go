package entity

import (
	"gorm.io/gorm"
)

// Roles a user can hold. Providers additionally own a ServiceProvider profile.
const (
	RoleAdmin    = "admin"
	RoleProvider = "provider"
	RoleConsumer = "consumer"
)

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleProvider || r == RoleConsumer
}

type User struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"not null;default:consumer" json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`

	// Bumping TokenVersion invalidates every JWT issued before the bump.
	TokenVersion int `gorm:"not null;default:0" json:"-"`

	// Free-form preferences blob, stored as raw JSON text.
	Settings string `gorm:"type:text" json:"-"`

	// Relations — preload only when needed
	Favorites       []ServiceProvider `gorm:"many2many:user_favorites;" json:"-"`
	ProviderProfile *ServiceProvider  `gorm:"foreignKey:UserID" json:"-"`
	Orders          []Order           `gorm:"foreignKey:ConsumerID" json:"-"`
	Reviews         []Review          `gorm:"foreignKey:ConsumerID" json:"-"`
	Notifications   []Notification    `json:"-"`
	HelpRequests    []HelpRequest     `gorm:"foreignKey:FromUserID" json:"-"`
}
