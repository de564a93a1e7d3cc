package services

import (
	"strings"
	"testing"

	"github.com/lehar2932-art/tiffin-testing/entity"
)

type captureEmail struct {
	to, subject, html, text string
}

func (e *captureEmail) SendEmail(to, subject, htmlBody, textBody string) error {
	e.to, e.subject, e.html, e.text = to, subject, htmlBody, textBody
	return nil
}

func TestOrderPlacedWording(t *testing.T) {
	db := newTestDB(t)
	consumer := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")

	tests := []struct {
		name      string
		status    string
		wantTitle string
		wantWord  string
	}{
		{"pending order announces placement", entity.OrderPending, "Order Placed", "placed"},
		{"confirmed order announces confirmation", entity.OrderConfirmed, "Order Confirmed", "confirmed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := &captureEmail{}
			svc := newNotifier(db)
			svc.Email = email

			order := createOrder(t, db, consumer.ID, provider.ID, tt.status, 20000)
			svc.OrderPlaced(order, consumer, provider)

			got := notificationsFor(t, db, consumer.ID)
			last := got[len(got)-1]
			if last.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", last.Title, tt.wantTitle)
			}
			if !strings.Contains(last.Message, tt.wantWord) {
				t.Errorf("message = %q, want it to mention %q", last.Message, tt.wantWord)
			}
			if tt.status == entity.OrderPending && strings.Contains(last.Message, "confirmed") {
				t.Errorf("pending-order message claims confirmation: %q", last.Message)
			}
			if !strings.Contains(email.subject, tt.wantWord) {
				t.Errorf("email subject = %q, want it to mention %q", email.subject, tt.wantWord)
			}
			if !strings.Contains(email.text, tt.wantWord) {
				t.Errorf("email body = %q, want it to mention %q", email.text, tt.wantWord)
			}
			if email.to != consumer.Email {
				t.Errorf("email to = %q, want %q", email.to, consumer.Email)
			}
		})
	}
}

func TestMarkRead(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	other := createUser(t, db, "Binod", "binod@example.com", entity.RoleConsumer)
	svc := newNotifier(db)

	var ids []uint
	for i := 0; i < 3; i++ {
		if err := svc.Notify(user.ID, "T", "m", entity.NotifySystem, nil); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}
	if err := svc.Notify(other.ID, "T", "m", entity.NotifySystem, nil); err != nil {
		t.Fatalf("Notify other: %v", err)
	}
	for _, n := range notificationsFor(t, db, user.ID) {
		ids = append(ids, n.ID)
	}

	unread, err := svc.UnreadCount(user.ID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if unread != 3 {
		t.Fatalf("unread = %d, want 3", unread)
	}

	t.Run("subset", func(t *testing.T) {
		if err := svc.MarkRead(user.ID, ids[:1]); err != nil {
			t.Fatalf("MarkRead: %v", err)
		}
		if unread, _ := svc.UnreadCount(user.ID); unread != 2 {
			t.Errorf("unread = %d, want 2", unread)
		}
	})

	t.Run("cannot mark someone else's", func(t *testing.T) {
		otherIDs := []uint{notificationsFor(t, db, other.ID)[0].ID}
		if err := svc.MarkRead(user.ID, otherIDs); err != nil {
			t.Fatalf("MarkRead: %v", err)
		}
		if unread, _ := svc.UnreadCount(other.ID); unread != 1 {
			t.Errorf("other's unread = %d, want 1", unread)
		}
	})

	t.Run("empty ids marks all", func(t *testing.T) {
		if err := svc.MarkRead(user.ID, nil); err != nil {
			t.Fatalf("MarkRead: %v", err)
		}
		if unread, _ := svc.UnreadCount(user.ID); unread != 0 {
			t.Errorf("unread = %d, want 0", unread)
		}
	})
}

func TestListForUserUnreadOnly(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	svc := newNotifier(db)

	for i := 0; i < 5; i++ {
		if err := svc.Notify(user.ID, "T", "m", entity.NotifyOrder, nil); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}
	first := notificationsFor(t, db, user.ID)[0].ID
	if err := svc.MarkRead(user.ID, []uint{first}); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	page, err := svc.ListForUser(user.ID, true, 1, 10)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if page.Total != 4 {
		t.Errorf("total = %d, want 4", page.Total)
	}
	if page.UnreadCount != 4 {
		t.Errorf("unreadCount = %d, want 4", page.UnreadCount)
	}
	for _, n := range page.Items {
		if n.IsRead {
			t.Errorf("unreadOnly listing returned read notification %d", n.ID)
		}
	}
}

func TestNotifyInvalidTypeFallsBackToSystem(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	svc := newNotifier(db)

	if err := svc.Notify(user.ID, "T", "m", "smoke_signal", nil); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	got := notificationsFor(t, db, user.ID)
	if got[0].Type != entity.NotifySystem {
		t.Errorf("type = %q, want %q", got[0].Type, entity.NotifySystem)
	}
}

func TestBroadcastSkipsInactiveUsers(t *testing.T) {
	db := newTestDB(t)
	active := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	inactive := createUser(t, db, "Binod", "binod@example.com", entity.RoleConsumer)
	db.Model(&entity.User{}).Where("id = ?", inactive.ID).Update("is_active", false)
	svc := newNotifier(db)

	sent, err := svc.Broadcast("Diwali Special", "20% off all thalis this week.")
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if sent != 1 {
		t.Errorf("sent = %d, want 1", sent)
	}
	got := notificationsFor(t, db, active.ID)
	if len(got) != 1 || got[0].Type != entity.NotifyPromotion {
		t.Errorf("active user notifications = %+v, want one promotion", got)
	}
	if got := notificationsFor(t, db, inactive.ID); len(got) != 0 {
		t.Errorf("inactive user notifications = %d, want 0", len(got))
	}
}
