package configs

import (
	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	// Migrate the schema
	db.AutoMigrate(
		&entity.User{},
		&entity.ServiceProvider{},
		&entity.Menu{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Review{},
		&entity.Notification{},
		&entity.HelpRequest{}, &entity.HelpResponse{},
	)
}
