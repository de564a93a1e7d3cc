package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/configs"
	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/repository"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// AuthService handles registration, login and session lifecycle.
type AuthService struct {
	DB           *gorm.DB
	UserRepo     *repository.UserRepository
	ProviderRepo *repository.ProviderRepository
	JWTSecret    string
	JWTTTL       time.Duration
}

func NewAuthService(db *gorm.DB, userRepo *repository.UserRepository, providerRepo *repository.ProviderRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		DB:           db,
		UserRepo:     userRepo,
		ProviderRepo: providerRepo,
		JWTSecret:    secret,
		JWTTTL:       ttl,
	}
}

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), configs.BcryptCost)
	return string(hash), err
}

func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // consumer (default) or provider
	Phone    string
	Address  string

	// Provider registration only.
	BusinessName  string
	Description   string
	Cuisine       []string
	DeliveryAreas []string
}

// Register creates the user and, for providers, the ServiceProvider profile
// in the same transaction.
func (s *AuthService) Register(in RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	count, err := s.UserRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	role := in.Role
	if role == "" {
		role = entity.RoleConsumer
	}
	if role != entity.RoleConsumer && role != entity.RoleProvider {
		return nil, ErrValidation
	}
	if role == entity.RoleProvider && strings.TrimSpace(in.BusinessName) == "" {
		return nil, ErrValidation
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hashed,
		Role:     role,
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		IsActive: true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if role != entity.RoleProvider {
			return nil
		}
		profile := &entity.ServiceProvider{
			UserID:        user.ID,
			BusinessName:  strings.TrimSpace(in.BusinessName),
			Description:   in.Description,
			Cuisine:       in.Cuisine,
			DeliveryAreas: in.DeliveryAreas,
			IsActive:      true,
			OpeningTime:   "09:00",
			ClosingTime:   "21:00",
		}
		return s.ProviderRepo.Create(tx, profile)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and mints a session token. Disabled accounts
// are rejected here specifically; session checks do not consult the flag.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, user.TokenVersion, s.JWTSecret, s.JWTTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Profile(userID uint) (*entity.User, error) {
	return s.UserRepo.FindByID(userID)
}

// UpdateProfile applies an allow-listed partial update.
func (s *AuthService) UpdateProfile(userID uint, updates map[string]any) (*entity.User, error) {
	allowed := map[string]bool{"name": true, "phone": true, "address": true}
	filtered := map[string]any{}
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) > 0 {
		if err := s.UserRepo.Update(userID, filtered); err != nil {
			return nil, err
		}
	}
	return s.UserRepo.FindByID(userID)
}

// LogoutAll bumps tokenVersion, invalidating every issued token.
func (s *AuthService) LogoutAll(userID uint) error {
	return s.UserRepo.IncrementTokenVersion(userID)
}

// DeleteAccount hard-deletes the user and, for providers, their profile.
func (s *AuthService) DeleteAccount(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ProviderRepo.DeleteByUserID(tx, userID); err != nil {
			return err
		}
		return s.UserRepo.Delete(tx, userID)
	})
}
