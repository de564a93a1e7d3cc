package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/repository"
)

// PaymentVerifier checks the gateway callback triple. Implemented by
// pkg/razorpay; tests plug in a stub.
type PaymentVerifier interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

type OrderService struct {
	DB           *gorm.DB
	Repo         *repository.OrderRepository
	ProviderRepo *repository.ProviderRepository
	UserRepo     *repository.UserRepository
	Notifier     *NotificationService
	Payments     PaymentVerifier

	// AutoConfirm persists new orders as "confirmed"; otherwise they start
	// "pending" and wait for the provider.
	AutoConfirm bool
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	providerRepo *repository.ProviderRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
	payments PaymentVerifier,
	autoConfirm bool,
) *OrderService {
	return &OrderService{
		DB:           db,
		Repo:         repo,
		ProviderRepo: providerRepo,
		UserRepo:     userRepo,
		Notifier:     notifier,
		Payments:     payments,
		AutoConfirm:  autoConfirm,
	}
}

// ----- DTOs from the controller -----

type OrderItemIn struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name" binding:"required"`
	Price      int64  `json:"price" binding:"min=0"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderReq struct {
	ProviderID      uint          `json:"providerId" binding:"required"`
	Items           []OrderItemIn `json:"items" binding:"required,min=1,dive"`
	TotalAmount     int64         `json:"totalAmount" binding:"required,min=1"`
	DeliveryAddress string        `json:"deliveryAddress" binding:"required"`
	DeliveryDate    time.Time     `json:"deliveryDate" binding:"required"`
	PaymentMethod   string        `json:"paymentMethod" binding:"required"`
	Notes           string        `json:"notes"`

	// Gateway callback triple, required when paymentMethod is "razorpay".
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

// Create places an order from a client cart snapshot. Only consumers may
// order. Item names/prices come from the request and are stored verbatim;
// the live menu is not re-read. Side effects (notifications, email, SMS) run
// after commit and never fail the order.
func (s *OrderService) Create(consumerID uint, role string, req *CreateOrderReq) (*entity.Order, error) {
	if role != entity.RoleConsumer {
		return nil, ErrForbidden
	}

	provider, err := s.ProviderRepo.FindByID(req.ProviderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !provider.IsActive {
		return nil, ErrValidation
	}

	// The snapshot total must add up.
	var sum int64
	for _, it := range req.Items {
		sum += it.Price * int64(it.Quantity)
	}
	if sum != req.TotalAmount {
		return nil, ErrValidation
	}

	paymentStatus := entity.PaymentPending
	if req.PaymentMethod == entity.MethodRazorpay {
		if s.Payments == nil ||
			!s.Payments.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
			return nil, ErrPaymentSignature
		}
		paymentStatus = entity.PaymentPaid
	}

	status := entity.OrderPending
	if s.AutoConfirm {
		status = entity.OrderConfirmed
	}

	order := &entity.Order{
		ConsumerID:      consumerID,
		ProviderID:      req.ProviderID,
		TotalAmount:     req.TotalAmount,
		Status:          status,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    req.DeliveryDate,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, entity.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
		})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, order); err != nil {
			return err
		}
		return s.ProviderRepo.RecountTotalOrders(tx, provider.ID)
	})
	if err != nil {
		return nil, err
	}

	// Best-effort fan-out; failures are logged inside and swallowed.
	if s.Notifier != nil {
		consumer, err := s.UserRepo.FindByID(consumerID)
		if err != nil {
			log.Printf("order %d fan-out skipped: %v", order.ID, err)
		} else {
			s.Notifier.OrderPlaced(order, consumer, provider)
		}
	}

	return order, nil
}

// TransitionStatus applies a role-scoped status change. Non-admin callers
// must own the order (consumer) or the provider side of it. Admin-initiated
// transitions additionally notify both parties.
func (s *OrderService) TransitionStatus(actorID uint, role string, orderID uint, newStatus string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(newStatus) {
		return nil, ErrValidation
	}

	order, err := s.Repo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	provider, err := s.ProviderRepo.FindByID(order.ProviderID)
	if err != nil {
		return nil, err
	}

	switch role {
	case entity.RoleAdmin:
		// admin may act on any order
	case entity.RoleConsumer:
		if order.ConsumerID != actorID {
			return nil, ErrForbidden
		}
	case entity.RoleProvider:
		if provider.UserID != actorID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if !CanTransition(order.Status, newStatus, role) {
		return nil, ErrInvalidTransition
	}

	affected, err := s.Repo.UpdateStatusGuard(s.DB, order.ID, order.Status, newStatus)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost a concurrent update; the client should re-read.
		return nil, ErrConflict
	}
	order.Status = newStatus

	if role == entity.RoleAdmin && s.Notifier != nil {
		s.Notifier.OrderStatusChanged(order, provider.UserID, newStatus)
	}

	return order, nil
}

// SetPaymentStatus is the admin override for reconciling a payment, e.g.
// marking a gateway payment failed or refunding a cancelled order. The
// consumer is told about the change best-effort.
func (s *OrderService) SetPaymentStatus(orderID uint, paymentStatus string) (*entity.Order, error) {
	if !entity.ValidPaymentStatus(paymentStatus) {
		return nil, ErrValidation
	}

	order, err := s.Repo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.Repo.UpdatePaymentStatus(order.ID, paymentStatus); err != nil {
		return nil, err
	}
	order.PaymentStatus = paymentStatus

	if s.Notifier != nil {
		s.Notifier.NotifyBestEffort(order.ConsumerID, "Payment Update",
			fmt.Sprintf("Payment for order #%d is now %s.", order.ID, paymentStatus),
			entity.NotifyPayment, map[string]any{"orderId": order.ID, "paymentStatus": paymentStatus})
	}

	return order, nil
}

// ListFor scopes the listing to the caller: consumers see their orders,
// providers their restaurant's, admins everything.
func (s *OrderService) ListFor(actorID uint, role, status string, page, limit int) ([]repository.OrderSummary, int64, error) {
	f := repository.OrderFilter{Status: status}
	switch role {
	case entity.RoleConsumer:
		f.ConsumerID = actorID
	case entity.RoleProvider:
		provider, err := s.ProviderRepo.FindByUserID(actorID)
		if err != nil {
			return nil, 0, ErrForbidden
		}
		f.ProviderID = provider.ID
	case entity.RoleAdmin:
		// unscoped
	default:
		return nil, 0, ErrForbidden
	}
	return s.Repo.List(f, page, limit)
}

// Detail returns one order after an ownership check.
func (s *OrderService) Detail(actorID uint, role string, orderID uint) (*entity.Order, error) {
	order, err := s.Repo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch role {
	case entity.RoleAdmin:
		return order, nil
	case entity.RoleConsumer:
		if order.ConsumerID != actorID {
			return nil, ErrForbidden
		}
		return order, nil
	case entity.RoleProvider:
		provider, err := s.ProviderRepo.FindByUserID(actorID)
		if err != nil || provider.ID != order.ProviderID {
			return nil, ErrForbidden
		}
		return order, nil
	}
	return nil, ErrForbidden
}
