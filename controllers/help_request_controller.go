package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/services"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

type HelpRequestController struct {
	Help *services.HelpService
}

func NewHelpRequestController(help *services.HelpService) *HelpRequestController {
	return &HelpRequestController{Help: help}
}

// POST /help-requests
func (hc *HelpRequestController) Create(c *gin.Context) {
	var req services.CreateHelpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	hr, err := hc.Help.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, hr)
}

// GET /help-requests?type=&status=&priority=&page=&limit=
func (hc *HelpRequestController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)

	items, total, err := hc.Help.List(
		utils.CurrentUserID(c), utils.CurrentRole(c),
		c.Query("type"), c.Query("status"), c.Query("priority"),
		page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Paginated(c, items, utils.NewPageInfo(page, limit, len(items), total))
}

// GET /help-requests/:id
func (hc *HelpRequestController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid help request id")
		return
	}

	hr, err := hc.Help.Get(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, hr)
}

type RespondRequest struct {
	Message string `json:"message" binding:"required"`
}

// POST /help-requests/:id/responses
func (hc *HelpRequestController) Respond(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid help request id")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	hr, err := hc.Help.Respond(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id), req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, hr)
}

// PATCH /help-requests/:id — status and/or priority.
func (hc *HelpRequestController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid help request id")
		return
	}

	var req services.UpdateHelpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	hr, err := hc.Help.Update(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id), &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, hr)
}
