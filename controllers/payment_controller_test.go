package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/razorpay"
)

func newPaymentRouter(gateway GatewayOrderCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payments/order", NewPaymentController(gateway).CreateGatewayOrder)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateGatewayOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode gateway request: %v", err)
		}
		if body["amount"].(float64) != 20000 {
			t.Errorf("amount = %v, want 20000", body["amount"])
		}
		json.NewEncoder(w).Encode(razorpay.GatewayOrder{
			ID: "order_test1", Amount: 20000, Currency: "INR", Status: "created",
		})
	}))
	defer srv.Close()

	cl := razorpay.NewClient("test_key", "test_secret")
	cl.BaseURL = srv.URL
	r := newPaymentRouter(cl)

	t.Run("registers an order", func(t *testing.T) {
		w := postJSON(t, r, "/payments/order", `{"amount":20000}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusCreated, w.Body.String())
		}
		var out struct {
			OK   bool                  `json:"ok"`
			Data razorpay.GatewayOrder `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !out.OK || out.Data.ID != "order_test1" {
			t.Errorf("response = %+v, want gateway order order_test1", out)
		}
	})

	t.Run("rejects amount below the minimum", func(t *testing.T) {
		w := postJSON(t, r, "/payments/order", `{"amount":50}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("unconfigured gateway answers 503", func(t *testing.T) {
		w := postJSON(t, newPaymentRouter(nil), "/payments/order", `{"amount":20000}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}
