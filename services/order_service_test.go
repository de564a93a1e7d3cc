package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/repository"
)

type stubVerifier struct {
	ok     bool
	called bool
}

func (v *stubVerifier) VerifySignature(orderID, paymentID, signature string) bool {
	v.called = true
	return v.ok
}

func newOrderService(db *gorm.DB, verifier PaymentVerifier, autoConfirm bool) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProviderRepository(db),
		repository.NewUserRepository(db),
		newNotifier(db),
		verifier,
		autoConfirm,
	)
}

func codRequest(providerID uint) *CreateOrderReq {
	return &CreateOrderReq{
		ProviderID: providerID,
		Items: []OrderItemIn{
			{MenuItemID: 1, Name: "Dal Tadka Thali", Price: 12000, Quantity: 1},
			{MenuItemID: 2, Name: "Jeera Rice", Price: 4000, Quantity: 2},
		},
		TotalAmount:     20000,
		DeliveryAddress: "12 MG Road",
		DeliveryDate:    time.Now().Add(24 * time.Hour),
		PaymentMethod:   entity.MethodCOD,
	}
}

func TestCreateOrderCOD(t *testing.T) {
	db := newTestDB(t)
	consumer := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")

	verifier := &stubVerifier{ok: true}
	svc := newOrderService(db, verifier, true)

	order, err := svc.Create(consumer.ID, entity.RoleConsumer, codRequest(provider.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Status != entity.OrderConfirmed {
		t.Errorf("status = %q, want %q", order.Status, entity.OrderConfirmed)
	}
	if order.PaymentStatus != entity.PaymentPending {
		t.Errorf("paymentStatus = %q, want %q", order.PaymentStatus, entity.PaymentPending)
	}
	if order.TotalAmount != 20000 {
		t.Errorf("totalAmount = %d, want 20000", order.TotalAmount)
	}
	if verifier.called {
		t.Error("cod order must not hit the payment verifier")
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}

	// One notification for each party.
	if got := notificationsFor(t, db, consumer.ID); len(got) != 1 {
		t.Errorf("consumer notifications = %d, want 1", len(got))
	}
	if got := notificationsFor(t, db, owner.ID); len(got) != 1 {
		t.Errorf("provider notifications = %d, want 1", len(got))
	}

	// Lifetime order count follows.
	var p entity.ServiceProvider
	if err := db.First(&p, provider.ID).Error; err != nil {
		t.Fatalf("reload provider: %v", err)
	}
	if p.TotalOrders != 1 {
		t.Errorf("totalOrders = %d, want 1", p.TotalOrders)
	}
}

func TestCreateOrderConsumerOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	admin := createUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")

	svc := newOrderService(db, nil, true)

	tests := []struct {
		name    string
		actorID uint
		role    string
	}{
		{"provider cannot place orders", owner.ID, entity.RoleProvider},
		{"admin cannot place orders", admin.ID, entity.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(tt.actorID, tt.role, codRequest(provider.ID)); !errors.Is(err, ErrForbidden) {
				t.Fatalf("err = %v, want ErrForbidden", err)
			}
		})
	}

	var n int64
	db.Model(&entity.Order{}).Count(&n)
	if n != 0 {
		t.Errorf("orders persisted = %d, want 0", n)
	}
}

func TestCreateOrderPendingWithoutAutoConfirm(t *testing.T) {
	db := newTestDB(t)
	consumer := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")

	svc := newOrderService(db, nil, false)
	order, err := svc.Create(consumer.ID, entity.RoleConsumer, codRequest(provider.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Status != entity.OrderPending {
		t.Errorf("status = %q, want %q", order.Status, entity.OrderPending)
	}

	// The fan-out must not announce a confirmation that has not happened.
	got := notificationsFor(t, db, consumer.ID)
	if len(got) != 1 {
		t.Fatalf("consumer notifications = %d, want 1", len(got))
	}
	if got[0].Title != "Order Placed" {
		t.Errorf("title = %q, want %q", got[0].Title, "Order Placed")
	}
	if strings.Contains(got[0].Message, "confirmed") {
		t.Errorf("pending-order message claims confirmation: %q", got[0].Message)
	}
}

func TestCreateOrderTotalMismatch(t *testing.T) {
	db := newTestDB(t)
	consumer := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")

	svc := newOrderService(db, nil, true)
	req := codRequest(provider.ID)
	req.TotalAmount = 19999

	if _, err := svc.Create(consumer.ID, entity.RoleConsumer, req); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	var n int64
	db.Model(&entity.Order{}).Count(&n)
	if n != 0 {
		t.Errorf("orders persisted = %d, want 0", n)
	}
}

func TestCreateOrderRazorpay(t *testing.T) {
	db := newTestDB(t)
	consumer := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")

	razorpayReq := func() *CreateOrderReq {
		req := codRequest(provider.ID)
		req.PaymentMethod = entity.MethodRazorpay
		req.RazorpayOrderID = "order_1"
		req.RazorpayPaymentID = "pay_1"
		req.RazorpaySignature = "sig"
		return req
	}

	t.Run("tampered signature rejected", func(t *testing.T) {
		svc := newOrderService(db, &stubVerifier{ok: false}, true)
		if _, err := svc.Create(consumer.ID, entity.RoleConsumer, razorpayReq()); !errors.Is(err, ErrPaymentSignature) {
			t.Fatalf("err = %v, want ErrPaymentSignature", err)
		}
		var n int64
		db.Model(&entity.Order{}).Count(&n)
		if n != 0 {
			t.Errorf("orders persisted = %d, want 0", n)
		}
		db.Model(&entity.Notification{}).Count(&n)
		if n != 0 {
			t.Errorf("notifications persisted = %d, want 0", n)
		}
	})

	t.Run("no verifier configured rejected", func(t *testing.T) {
		svc := newOrderService(db, nil, true)
		if _, err := svc.Create(consumer.ID, entity.RoleConsumer, razorpayReq()); !errors.Is(err, ErrPaymentSignature) {
			t.Fatalf("err = %v, want ErrPaymentSignature", err)
		}
	})

	t.Run("valid signature marks paid", func(t *testing.T) {
		svc := newOrderService(db, &stubVerifier{ok: true}, true)
		order, err := svc.Create(consumer.ID, entity.RoleConsumer, razorpayReq())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if order.PaymentStatus != entity.PaymentPaid {
			t.Errorf("paymentStatus = %q, want %q", order.PaymentStatus, entity.PaymentPaid)
		}
		if got := notificationsFor(t, db, consumer.ID); len(got) != 1 {
			t.Errorf("consumer notifications = %d, want 1", len(got))
		}
		if got := notificationsFor(t, db, owner.ID); len(got) != 1 {
			t.Errorf("provider notifications = %d, want 1", len(got))
		}
	})
}

func TestCreateOrderInactiveProvider(t *testing.T) {
	db := newTestDB(t)
	consumer := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")
	db.Model(&entity.ServiceProvider{}).Where("id = ?", provider.ID).Update("is_active", false)

	svc := newOrderService(db, nil, true)
	if _, err := svc.Create(consumer.ID, entity.RoleConsumer, codRequest(provider.ID)); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestTransitionStatus(t *testing.T) {
	db := newTestDB(t)
	consumer := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	other := createUser(t, db, "Binod", "binod@example.com", entity.RoleConsumer)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	admin := createUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")

	svc := newOrderService(db, nil, true)

	t.Run("provider advances own order", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderConfirmed, 20000)
		got, err := svc.TransitionStatus(owner.ID, entity.RoleProvider, order.ID, entity.OrderPreparing)
		if err != nil {
			t.Fatalf("TransitionStatus: %v", err)
		}
		if got.Status != entity.OrderPreparing {
			t.Errorf("status = %q, want %q", got.Status, entity.OrderPreparing)
		}
	})

	t.Run("consumer cannot advance", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderConfirmed, 20000)
		_, err := svc.TransitionStatus(consumer.ID, entity.RoleConsumer, order.ID, entity.OrderPreparing)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("err = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("consumer cancels own order", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderConfirmed, 20000)
		got, err := svc.TransitionStatus(consumer.ID, entity.RoleConsumer, order.ID, entity.OrderCancelled)
		if err != nil {
			t.Fatalf("TransitionStatus: %v", err)
		}
		if got.Status != entity.OrderCancelled {
			t.Errorf("status = %q, want %q", got.Status, entity.OrderCancelled)
		}
	})

	t.Run("stranger is forbidden before transition check", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderConfirmed, 20000)
		_, err := svc.TransitionStatus(other.ID, entity.RoleConsumer, order.ID, entity.OrderCancelled)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("terminal order stays put", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderDelivered, 20000)
		_, err := svc.TransitionStatus(owner.ID, entity.RoleProvider, order.ID, entity.OrderPreparing)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("err = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("admin transition notifies both parties", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderReady, 20000)
		before := len(notificationsFor(t, db, consumer.ID))
		beforeOwner := len(notificationsFor(t, db, owner.ID))

		if _, err := svc.TransitionStatus(admin.ID, entity.RoleAdmin, order.ID, entity.OrderDelivered); err != nil {
			t.Fatalf("TransitionStatus: %v", err)
		}
		if got := len(notificationsFor(t, db, consumer.ID)); got != before+1 {
			t.Errorf("consumer notifications = %d, want %d", got, before+1)
		}
		if got := len(notificationsFor(t, db, owner.ID)); got != beforeOwner+1 {
			t.Errorf("provider notifications = %d, want %d", got, beforeOwner+1)
		}
	})

	t.Run("stale status conflicts", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderConfirmed, 20000)
		// Another actor moved it underneath us.
		db.Model(&entity.Order{}).Where("id = ?", order.ID).Update("status", entity.OrderCancelled)

		_, err := svc.TransitionStatus(owner.ID, entity.RoleProvider, order.ID, entity.OrderPreparing)
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
	})
}

func TestSetPaymentStatus(t *testing.T) {
	db := newTestDB(t)
	consumer := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	owner := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	provider := createProvider(t, db, owner, "Ravi's Tiffins")

	svc := newOrderService(db, nil, true)

	t.Run("refund persists and notifies the consumer", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderCancelled, 20000)
		db.Model(&entity.Order{}).Where("id = ?", order.ID).Update("payment_status", entity.PaymentPaid)

		got, err := svc.SetPaymentStatus(order.ID, entity.PaymentRefunded)
		if err != nil {
			t.Fatalf("SetPaymentStatus: %v", err)
		}
		if got.PaymentStatus != entity.PaymentRefunded {
			t.Errorf("paymentStatus = %q, want %q", got.PaymentStatus, entity.PaymentRefunded)
		}

		var reloaded entity.Order
		if err := db.First(&reloaded, order.ID).Error; err != nil {
			t.Fatalf("reload order: %v", err)
		}
		if reloaded.PaymentStatus != entity.PaymentRefunded {
			t.Errorf("persisted paymentStatus = %q, want %q", reloaded.PaymentStatus, entity.PaymentRefunded)
		}

		notes := notificationsFor(t, db, consumer.ID)
		if len(notes) != 1 || notes[0].Type != entity.NotifyPayment {
			t.Errorf("consumer notifications = %+v, want one payment update", notes)
		}
	})

	t.Run("unknown payment status rejected", func(t *testing.T) {
		order := createOrder(t, db, consumer.ID, provider.ID, entity.OrderConfirmed, 20000)
		if _, err := svc.SetPaymentStatus(order.ID, "settled"); !errors.Is(err, ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		if _, err := svc.SetPaymentStatus(99999, entity.PaymentFailed); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestListForScoping(t *testing.T) {
	db := newTestDB(t)
	c1 := createUser(t, db, "Asha", "asha@example.com", entity.RoleConsumer)
	c2 := createUser(t, db, "Binod", "binod@example.com", entity.RoleConsumer)
	o1 := createUser(t, db, "Ravi", "ravi@example.com", entity.RoleProvider)
	o2 := createUser(t, db, "Sita", "sita@example.com", entity.RoleProvider)
	admin := createUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	p1 := createProvider(t, db, o1, "Ravi's Tiffins")
	p2 := createProvider(t, db, o2, "Sita's Kitchen")

	createOrder(t, db, c1.ID, p1.ID, entity.OrderConfirmed, 10000)
	createOrder(t, db, c1.ID, p2.ID, entity.OrderConfirmed, 10000)
	createOrder(t, db, c2.ID, p1.ID, entity.OrderDelivered, 10000)

	svc := newOrderService(db, nil, true)

	tests := []struct {
		name    string
		actorID uint
		role    string
		status  string
		want    int64
	}{
		{"consumer sees own", c1.ID, entity.RoleConsumer, "", 2},
		{"provider sees own restaurant", o1.ID, entity.RoleProvider, "", 2},
		{"admin sees all", admin.ID, entity.RoleAdmin, "", 3},
		{"status filter applies", admin.ID, entity.RoleAdmin, entity.OrderDelivered, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := svc.ListFor(tt.actorID, tt.role, tt.status, 1, 10)
			if err != nil {
				t.Fatalf("ListFor: %v", err)
			}
			if total != tt.want {
				t.Errorf("total = %d, want %d", total, tt.want)
			}
		})
	}

	t.Run("detail hides other consumers' orders", func(t *testing.T) {
		order := createOrder(t, db, c1.ID, p1.ID, entity.OrderConfirmed, 10000)
		if _, err := svc.Detail(c2.ID, entity.RoleConsumer, order.ID); !errors.Is(err, ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
		if _, err := svc.Detail(c1.ID, entity.RoleConsumer, order.ID); err != nil {
			t.Fatalf("owner detail: %v", err)
		}
	})
}
