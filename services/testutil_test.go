package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.ServiceProvider{},
		&entity.Menu{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Review{},
		&entity.Notification{},
		&entity.HelpRequest{}, &entity.HelpResponse{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		Name:     name,
		Email:    email,
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func createProvider(t *testing.T, db *gorm.DB, owner *entity.User, business string) *entity.ServiceProvider {
	t.Helper()
	p := &entity.ServiceProvider{
		UserID:       owner.ID,
		BusinessName: business,
		IsActive:     true,
		OpeningTime:  "09:00",
		ClosingTime:  "21:00",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create provider %s: %v", business, err)
	}
	return p
}

func createOrder(t *testing.T, db *gorm.DB, consumerID, providerID uint, status string, total int64) *entity.Order {
	t.Helper()
	o := &entity.Order{
		ConsumerID:      consumerID,
		ProviderID:      providerID,
		TotalAmount:     total,
		Status:          status,
		DeliveryAddress: "12 MG Road",
		DeliveryDate:    time.Now().Add(24 * time.Hour),
		PaymentStatus:   entity.PaymentPending,
		PaymentMethod:   entity.MethodCOD,
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func newNotifier(db *gorm.DB) *NotificationService {
	return NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		nil, nil,
	)
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []entity.Notification {
	t.Helper()
	var out []entity.Notification
	if err := db.Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	return out
}
