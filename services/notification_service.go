package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/repository"
)

// EmailSender and SMSSender are the outbound side channels. Implementations
// live in pkg/notify; tests plug in fakes. Either may be nil (unconfigured).
type EmailSender interface {
	SendEmail(to, subject, htmlBody, textBody string) error
}

type SMSSender interface {
	SendSMS(to, message string) error
}

// Pusher delivers a live event to any connected websocket clients of a user.
// Nil when the socket layer is not wired.
type Pusher interface {
	Push(userID uint, event any)
}

// NotificationService owns the in-app notification log and the best-effort
// email/SMS dispatch. Every *BestEffort path logs failures and swallows them;
// it must never fail the caller's primary write.
type NotificationService struct {
	Repo     *repository.NotificationRepository
	UserRepo *repository.UserRepository
	Email    EmailSender
	SMS      SMSSender
	Live     Pusher
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, email EmailSender, sms SMSSender) *NotificationService {
	return &NotificationService{Repo: repo, UserRepo: userRepo, Email: email, SMS: sms}
}

// Notify appends one in-app notification. Data is marshalled to the opaque
// JSON payload column.
func (s *NotificationService) Notify(userID uint, title, message, typ string, data map[string]any) error {
	if !entity.ValidNotificationType(typ) {
		typ = entity.NotifySystem
	}
	payload := ""
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(b)
	}
	n := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
		Data:    payload,
	}
	if err := s.Repo.Create(n); err != nil {
		return err
	}
	if s.Live != nil {
		s.Live.Push(userID, n)
	}
	return nil
}

func (s *NotificationService) NotifyBestEffort(userID uint, title, message, typ string, data map[string]any) {
	if err := s.Notify(userID, title, message, typ, data); err != nil {
		log.Printf("notification fan-out failed for user %d: %v", userID, err)
	}
}

// ---------------- Order events ----------------

// OrderPlaced fans out after an order is persisted: one in-app record for
// each party, plus an email and, when a phone is on file, an SMS for the
// consumer. Wording follows the persisted status: auto-confirmed orders
// announce the confirmation, pending ones acknowledge the placement.
func (s *NotificationService) OrderPlaced(order *entity.Order, consumer *entity.User, provider *entity.ServiceProvider) {
	data := map[string]any{"orderId": order.ID, "providerId": order.ProviderID}

	title, message := "Order Placed",
		fmt.Sprintf("Your order from %s has been placed and is awaiting confirmation.", provider.BusinessName)
	verb := "placed"
	if order.Status == entity.OrderConfirmed {
		title = "Order Confirmed"
		message = fmt.Sprintf("Your order from %s has been confirmed.", provider.BusinessName)
		verb = "confirmed"
	}

	s.NotifyBestEffort(consumer.ID, title, message, entity.NotifyOrder, data)
	s.NotifyBestEffort(provider.UserID, "New Order Received",
		fmt.Sprintf("You have a new order worth ₹%.2f.", float64(order.TotalAmount)/100),
		entity.NotifyOrder, data)

	if s.Email != nil {
		subject, html, text := orderPlacedEmail(order, provider, verb)
		if err := s.Email.SendEmail(consumer.Email, subject, html, text); err != nil {
			log.Printf("order email failed for order %d: %v", order.ID, err)
		}
	}
	if s.SMS != nil && consumer.Phone != "" {
		msg := fmt.Sprintf("TiffinHub: order #%d from %s %s for %s.",
			order.ID, provider.BusinessName, verb, order.DeliveryDate.Format("02 Jan"))
		if err := s.SMS.SendSMS(consumer.Phone, msg); err != nil {
			log.Printf("order sms failed for order %d: %v", order.ID, err)
		}
	}
}

// OrderStatusChanged is the admin-transition fan-out: both parties are told.
func (s *NotificationService) OrderStatusChanged(order *entity.Order, providerUserID uint, newStatus string) {
	data := map[string]any{"orderId": order.ID, "status": newStatus}
	msg := fmt.Sprintf("Order #%d is now %s.", order.ID, newStatus)

	s.NotifyBestEffort(order.ConsumerID, "Order Update", msg, entity.NotifyOrder, data)
	s.NotifyBestEffort(providerUserID, "Order Update", msg, entity.NotifyOrder, data)
}

// ---------------- Help-desk events ----------------

// HelpRequestCreated notifies every admin for support types, or the explicit
// recipient for consumer-to-provider threads.
func (s *NotificationService) HelpRequestCreated(req *entity.HelpRequest, senderName string) {
	data := map[string]any{"helpRequestId": req.ID, "type": req.Type}
	title := "New Help Request"
	msg := fmt.Sprintf("%s: %s", senderName, req.Subject)

	if req.Type == entity.HelpConsumerToProvider && req.ToUserID != nil {
		s.NotifyBestEffort(*req.ToUserID, title, msg, entity.NotifySystem, data)
		return
	}

	adminIDs, err := s.UserRepo.FindAdminIDs()
	if err != nil {
		log.Printf("help-request fan-out failed: %v", err)
		return
	}
	for _, id := range adminIDs {
		s.NotifyBestEffort(id, title, msg, entity.NotifySystem, data)
	}
}

// HelpResponseAdded notifies the other party of the thread.
func (s *NotificationService) HelpResponseAdded(req *entity.HelpRequest, actorID uint) {
	title := "Help Request Update"
	msg := fmt.Sprintf("New response on: %s", req.Subject)
	data := map[string]any{"helpRequestId": req.ID}

	if actorID != req.FromUserID {
		s.NotifyBestEffort(req.FromUserID, title, msg, entity.NotifySystem, data)
		return
	}
	if req.ToUserID != nil {
		s.NotifyBestEffort(*req.ToUserID, title, msg, entity.NotifySystem, data)
		return
	}

	// Admin-bound thread with no explicit recipient: tell the admins.
	adminIDs, err := s.UserRepo.FindAdminIDs()
	if err != nil {
		log.Printf("help-response fan-out failed: %v", err)
		return
	}
	for _, id := range adminIDs {
		s.NotifyBestEffort(id, title, msg, entity.NotifySystem, data)
	}
}

// ---------------- Broadcast ----------------

// Broadcast creates a promotion notification for every active user.
func (s *NotificationService) Broadcast(title, message string) (int, error) {
	ids, err := s.UserRepo.FindActiveUserIDs()
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, id := range ids {
		if err := s.Notify(id, title, message, entity.NotifyPromotion, nil); err != nil {
			log.Printf("broadcast to user %d failed: %v", id, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// ---------------- Read models ----------------

type NotificationPage struct {
	Items       []entity.Notification
	Total       int64
	UnreadCount int64
}

func (s *NotificationService) ListForUser(userID uint, unreadOnly bool, page, limit int) (*NotificationPage, error) {
	items, total, err := s.Repo.ListForUser(userID, unreadOnly, page, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.Repo.UnreadCount(userID)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Items: items, Total: total, UnreadCount: unread}, nil
}

// MarkRead flips the given ids, or everything for the user when ids is empty.
func (s *NotificationService) MarkRead(userID uint, ids []uint) error {
	if len(ids) == 0 {
		return s.Repo.MarkAllRead(userID)
	}
	return s.Repo.MarkRead(userID, ids)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.Repo.UnreadCount(userID)
}

func orderPlacedEmail(order *entity.Order, provider *entity.ServiceProvider, verb string) (subject, html, text string) {
	amount := float64(order.TotalAmount) / 100
	subject = fmt.Sprintf("Your TiffinHub order is %s", verb)
	heading := "Order Placed"
	if order.Status == entity.OrderConfirmed {
		heading = "Order Confirmed"
	}
	text = fmt.Sprintf(
		"Your order #%d from %s has been %s.\nTotal: ₹%.2f\nDelivery: %s\nAddress: %s\n",
		order.ID, provider.BusinessName, verb, amount,
		order.DeliveryDate.Format("Mon, 02 Jan 2006"), order.DeliveryAddress)
	html = fmt.Sprintf(
		`<h2>%s</h2>
<p>Your order <b>#%d</b> from <b>%s</b> has been %s.</p>
<p>Total: <b>₹%.2f</b><br>Delivery: %s<br>Address: %s</p>`,
		heading, order.ID, provider.BusinessName, verb, amount,
		order.DeliveryDate.Format("Mon, 02 Jan 2006"), order.DeliveryAddress)
	return subject, html, text
}
