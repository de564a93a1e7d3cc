package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/razorpay"
	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
)

// GatewayOrderCreator registers a checkout order with the payment gateway.
// Implemented by pkg/razorpay; nil when the gateway keys are not configured.
type GatewayOrderCreator interface {
	CreateOrder(amount int64, currency string) (*razorpay.GatewayOrder, error)
}

type PaymentController struct {
	Gateway GatewayOrderCreator
}

func NewPaymentController(gateway GatewayOrderCreator) *PaymentController {
	return &PaymentController{Gateway: gateway}
}

type CreateGatewayOrderRequest struct {
	// Amount in paise.
	Amount   int64  `json:"amount" binding:"required,min=100"`
	Currency string `json:"currency"`
}

// POST /payments/order — registers the checkout order so the client can open
// the payment widget; the returned gateway order id feeds the later
// signature check on POST /orders.
func (pc *PaymentController) CreateGatewayOrder(c *gin.Context) {
	if pc.Gateway == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "payment gateway not configured"})
		return
	}

	var req CreateGatewayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := pc.Gateway.CreateOrder(req.Amount, req.Currency)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, order)
}
