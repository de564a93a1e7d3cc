package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/services"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=consumer provider"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	// Provider registration only.
	BusinessName  string   `json:"businessName"`
	Description   string   `json:"description"`
	Cuisine       []string `json:"cuisine"`
	DeliveryAreas []string `json:"deliveryAreas"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Auth.Register(services.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		Phone:         req.Phone,
		Address:       req.Address,
		BusinessName:  req.BusinessName,
		Description:   req.Description,
		Cuisine:       req.Cuisine,
		DeliveryAreas: req.DeliveryAreas,
	})
	if err != nil {
		fail(c, err)
		return
	}

	resp.Created(c, gin.H{
		"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
	})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Auth.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user": gin.H{
			"id": user.ID, "name": user.Name, "email": user.Email,
			"role": user.Role, "phone": user.Phone, "address": user.Address,
		},
	})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Auth.Profile(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, user)
}

type UpdateMeRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// PATCH /auth/me
func (a *AuthController) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	user, err := a.Auth.UpdateProfile(utils.CurrentUserID(c), updates)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, user)
}

// POST /auth/logout-all — stales every issued token for this account.
func (a *AuthController) LogoutAll(c *gin.Context) {
	if err := a.Auth.LogoutAll(utils.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "logged out everywhere"})
}

// DELETE /auth/account
func (a *AuthController) DeleteAccount(c *gin.Context) {
	if err := a.Auth.DeleteAccount(utils.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "account deleted"})
}
