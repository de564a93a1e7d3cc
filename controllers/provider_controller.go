package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/repository"
	"github.com/lehar2932-art/tiffin-testing/services"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

type ProviderController struct {
	Providers *repository.ProviderRepository
	Notifier  *services.NotificationService
}

func NewProviderController(providers *repository.ProviderRepository, notifier *services.NotificationService) *ProviderController {
	return &ProviderController{Providers: providers, Notifier: notifier}
}

// GET /providers?cuisine=&area=&verified=&minRating=&page=&limit=
func (pc *ProviderController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)

	f := repository.ProviderFilter{
		Cuisine: c.Query("cuisine"),
		Area:    c.Query("area"),
	}
	if v := c.Query("verified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Verified = &b
		}
	}
	if v := c.Query("minRating"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinRating = r
		}
	}

	providers, total, err := pc.Providers.List(f, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Paginated(c, providers, utils.NewPageInfo(page, limit, len(providers), total))
}

// GET /providers/:id
func (pc *ProviderController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid provider id")
		return
	}
	provider, err := pc.Providers.FindByID(uint(id))
	if err != nil {
		resp.NotFound(c, "provider not found")
		return
	}
	resp.OK(c, provider)
}

// ---------------- Partner (owner) ----------------

// GET /partner/profile
func (pc *ProviderController) MyProfile(c *gin.Context) {
	provider, err := pc.Providers.FindByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "provider profile not found")
		return
	}
	resp.OK(c, provider)
}

type UpdateProviderRequest struct {
	BusinessName  *string  `json:"businessName"`
	Description   *string  `json:"description"`
	Cuisine       []string `json:"cuisine"`
	DeliveryAreas []string `json:"deliveryAreas"`
	OpeningTime   *string  `json:"openingTime"`
	ClosingTime   *string  `json:"closingTime"`
	IsActive      *bool    `json:"isActive"`
}

// PATCH /partner/profile
func (pc *ProviderController) UpdateMyProfile(c *gin.Context) {
	provider, err := pc.Providers.FindByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "provider profile not found")
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.BusinessName != nil {
		updates["business_name"] = *req.BusinessName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Cuisine != nil {
		updates["cuisine"] = entity.StringList(req.Cuisine)
	}
	if req.DeliveryAreas != nil {
		updates["delivery_areas"] = entity.StringList(req.DeliveryAreas)
	}
	if req.OpeningTime != nil {
		updates["opening_time"] = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		updates["closing_time"] = *req.ClosingTime
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := pc.Providers.Update(provider.ID, updates); err != nil {
			resp.ServerError(c, err)
			return
		}
	}
	provider, err = pc.Providers.FindByID(provider.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, provider)
}

// ---------------- Admin ----------------

type VerifyProviderRequest struct {
	Verified bool `json:"verified"`
}

// PATCH /admin/providers/:id/verify
func (pc *ProviderController) AdminVerify(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid provider id")
		return
	}
	provider, err := pc.Providers.FindByID(uint(id))
	if err != nil {
		resp.NotFound(c, "provider not found")
		return
	}

	var req VerifyProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := pc.Providers.SetVerified(uint(id), req.Verified); err != nil {
		resp.ServerError(c, err)
		return
	}

	if pc.Notifier != nil && req.Verified {
		pc.Notifier.NotifyBestEffort(provider.UserID, "Business Verified",
			"Your TiffinHub business profile has been verified.",
			entity.NotifySystem, map[string]any{"providerId": provider.ID})
	}
	resp.OK(c, gin.H{"id": id, "verified": req.Verified})
}

// GET /admin/providers
func (pc *ProviderController) AdminList(c *gin.Context) {
	page, limit := utils.PageParams(c)

	f := repository.ProviderFilter{}
	if v := c.Query("verified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Verified = &b
		}
	}

	providers, total, err := pc.Providers.List(f, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Paginated(c, providers, utils.NewPageInfo(page, limit, len(providers), total))
}
