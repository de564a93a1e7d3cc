package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/services"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

// POST /reviews — the order ownership check is the real gate.
func (rc *ReviewController) Create(c *gin.Context) {
	var req services.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	review, err := rc.Reviews.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, review)
}

// GET /providers/:id/reviews — public.
func (rc *ReviewController) ListForProvider(c *gin.Context) {
	providerID, err := strconv.Atoi(c.Param("id"))
	if err != nil || providerID <= 0 {
		resp.BadRequest(c, "invalid provider id")
		return
	}
	page, limit := utils.PageParams(c)

	items, total, err := rc.Reviews.ListByProvider(uint(providerID), page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Paginated(c, items, utils.NewPageInfo(page, limit, len(items), total))
}

// GET /admin/reviews
func (rc *ReviewController) AdminList(c *gin.Context) {
	page, limit := utils.PageParams(c)

	items, total, err := rc.Reviews.ListAll(page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Paginated(c, items, utils.NewPageInfo(page, limit, len(items), total))
}

// DELETE /admin/reviews/:id
func (rc *ReviewController) AdminDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid review id")
		return
	}
	if err := rc.Reviews.Delete(uint(id)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "review deleted"})
}
