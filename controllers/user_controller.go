package controllers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/repository"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

// UserController covers favorites, the settings blob and admin user
// management.
type UserController struct {
	DB    *gorm.DB
	Users *repository.UserRepository
}

func NewUserController(db *gorm.DB, users *repository.UserRepository) *UserController {
	return &UserController{DB: db, Users: users}
}

// ---------------- Favorites (consumer) ----------------

// POST /favorites/:providerId
func (uc *UserController) AddFavorite(c *gin.Context) {
	providerID, err := strconv.Atoi(c.Param("providerId"))
	if err != nil || providerID <= 0 {
		resp.BadRequest(c, "invalid provider id")
		return
	}

	var provider entity.ServiceProvider
	if err := uc.DB.First(&provider, providerID).Error; err != nil {
		resp.NotFound(c, "provider not found")
		return
	}

	if err := uc.Users.AddFavorite(utils.CurrentUserID(c), uint(providerID)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "added to favorites"})
}

// DELETE /favorites/:providerId
func (uc *UserController) RemoveFavorite(c *gin.Context) {
	providerID, err := strconv.Atoi(c.Param("providerId"))
	if err != nil || providerID <= 0 {
		resp.BadRequest(c, "invalid provider id")
		return
	}
	if err := uc.Users.RemoveFavorite(utils.CurrentUserID(c), uint(providerID)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "removed from favorites"})
}

// GET /favorites
func (uc *UserController) ListFavorites(c *gin.Context) {
	favs, err := uc.Users.ListFavorites(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, favs)
}

// ---------------- Settings ----------------

// GET /settings
func (uc *UserController) GetSettings(c *gin.Context) {
	raw, err := uc.Users.FindSettings(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if raw == "" {
		resp.OK(c, gin.H{})
		return
	}
	var settings map[string]any
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		resp.OK(c, gin.H{})
		return
	}
	resp.OK(c, settings)
}

// PUT /settings — the blob is opaque to the server.
func (uc *UserController) SaveSettings(c *gin.Context) {
	var settings map[string]any
	if err := c.ShouldBindJSON(&settings); err != nil {
		resp.BadRequest(c, "invalid settings payload")
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		resp.BadRequest(c, "invalid settings payload")
		return
	}
	if err := uc.Users.SaveSettings(utils.CurrentUserID(c), string(raw)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, settings)
}

// ---------------- Admin user management ----------------

// GET /admin/users?role=&active=&page=&limit=
func (uc *UserController) AdminList(c *gin.Context) {
	page, limit := utils.PageParams(c)
	role := c.Query("role")

	var active *bool
	if v := c.Query("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			active = &b
		}
	}

	users, total, err := uc.Users.List(role, active, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Paginated(c, users, utils.NewPageInfo(page, limit, len(users), total))
}

type AdminUpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// PATCH /admin/users/:id
func (uc *UserController) AdminUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid user id")
		return
	}
	if _, err := uc.Users.FindByID(uint(id)); err != nil {
		resp.NotFound(c, "user not found")
		return
	}

	var req AdminUpdateUserRequest
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
	if req.Role != nil {
		if !entity.ValidRole(*req.Role) {
			resp.BadRequest(c, "invalid role")
			return
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := uc.Users.Update(uint(id), updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	user, err := uc.Users.FindByID(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, user)
}

// DELETE /admin/users/:id
func (uc *UserController) AdminDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid user id")
		return
	}
	if _, err := uc.Users.FindByID(uint(id)); err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	if err := uc.Users.Delete(uc.DB, uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "user deleted"})
}
