package razorpay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	cl := NewClient("test_key", "test_secret")

	// hex(HMAC-SHA256("order_MkWkNZ1|pay_9aBcDeF", "test_secret"))
	const good = "2661bbda51d6d4502674b3fba2088115a7d0d437739df1b74aa6b8cdfd14ed8d"

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{"valid", "order_MkWkNZ1", "pay_9aBcDeF", good, true},
		{"tampered signature", "order_MkWkNZ1", "pay_9aBcDeF", good[:63] + "0", false},
		{"wrong payment id", "order_MkWkNZ1", "pay_other", good, false},
		{"empty signature", "order_MkWkNZ1", "pay_9aBcDeF", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cl.VerifySignature(tt.orderID, tt.paymentID, tt.signature); got != tt.want {
				t.Errorf("VerifySignature = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("path = %q, want /orders", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "test_key" || pass != "test_secret" {
			t.Errorf("basic auth = %q/%q", user, pass)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["amount"].(float64) != 20000 {
			t.Errorf("amount = %v, want 20000", body["amount"])
		}
		if body["currency"].(string) != "INR" {
			t.Errorf("currency = %v, want INR", body["currency"])
		}
		json.NewEncoder(w).Encode(GatewayOrder{
			ID: "order_test1", Amount: 20000, Currency: "INR", Status: "created",
		})
	}))
	defer srv.Close()

	cl := NewClient("test_key", "test_secret")
	cl.BaseURL = srv.URL

	order, err := cl.CreateOrder(20000, "")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "order_test1" {
		t.Errorf("id = %q, want order_test1", order.ID)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	cl := NewClient("test_key", "test_secret")
	cl.BaseURL = srv.URL

	if _, err := cl.CreateOrder(100, "INR"); err == nil {
		t.Fatal("expected error on 400 response")
	}
}
