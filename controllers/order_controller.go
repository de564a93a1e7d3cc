package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/services"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Create(utils.CurrentUserID(c), utils.CurrentRole(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders?status=&page=&limit= — scoped to the caller's role.
func (oc *OrderController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)

	items, total, err := oc.Orders.ListFor(
		utils.CurrentUserID(c), utils.CurrentRole(c),
		c.Query("status"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Paginated(c, items, utils.NewPageInfo(page, limit, len(items), total))
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := oc.Orders.Detail(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.TransitionStatus(
		utils.CurrentUserID(c), utils.CurrentRole(c), uint(id), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// PATCH /admin/orders/:id/payment-status
func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.SetPaymentStatus(uint(id), req.PaymentStatus)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}
