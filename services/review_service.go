package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/repository"
)

var ErrAlreadyReviewed = errors.New("order already reviewed")

type ReviewService struct {
	DB           *gorm.DB
	Repo         *repository.ReviewRepository
	OrderRepo    *repository.OrderRepository
	ProviderRepo *repository.ProviderRepository
}

func NewReviewService(db *gorm.DB, repo *repository.ReviewRepository, orderRepo *repository.OrderRepository, providerRepo *repository.ProviderRepository) *ReviewService {
	return &ReviewService{DB: db, Repo: repo, OrderRepo: orderRepo, ProviderRepo: providerRepo}
}

type CreateReviewReq struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Create adds a review for a delivered order owned by the consumer and
// recomputes the provider's rating in the same transaction.
func (s *ReviewService) Create(consumerID uint, req *CreateReviewReq) (*entity.Review, error) {
	order, err := s.OrderRepo.FindByID(req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.ConsumerID != consumerID {
		return nil, ErrForbidden
	}
	if order.Status != entity.OrderDelivered {
		return nil, ErrValidation
	}

	exists, err := s.Repo.ExistsForOrder(consumerID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.Review{
		ConsumerID: consumerID,
		ProviderID: order.ProviderID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		// The order is ours and delivered, so the review is verified.
		IsVerified: true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, review); err != nil {
			return err
		}
		return s.ProviderRepo.RecomputeRating(tx, order.ProviderID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByProvider(providerID uint, page, limit int) ([]repository.ReviewSummary, int64, error) {
	return s.Repo.ListByProvider(providerID, page, limit)
}

func (s *ReviewService) ListAll(page, limit int) ([]repository.ReviewSummary, int64, error) {
	return s.Repo.ListAll(page, limit)
}

// Delete removes a review (admin only) and recomputes the rating.
func (s *ReviewService) Delete(reviewID uint) error {
	review, err := s.Repo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Delete(tx, reviewID); err != nil {
			return err
		}
		return s.ProviderRepo.RecomputeRating(tx, review.ProviderID)
	})
}
