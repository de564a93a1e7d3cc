package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/repository"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

type MenuController struct {
	Menus     *repository.MenuRepository
	Providers *repository.ProviderRepository
}

func NewMenuController(menus *repository.MenuRepository, providers *repository.ProviderRepository) *MenuController {
	return &MenuController{Menus: menus, Providers: providers}
}

// ownedMenu loads a menu and checks the caller owns its provider. Admins
// pass the check unconditionally.
func (mc *MenuController) ownedMenu(c *gin.Context) (*entity.Menu, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid menu id")
		return nil, false
	}
	menu, err := mc.Menus.FindByID(uint(id))
	if err != nil {
		resp.NotFound(c, "menu not found")
		return nil, false
	}
	if utils.CurrentRole(c) == entity.RoleAdmin {
		return menu, true
	}
	provider, err := mc.Providers.FindByUserID(utils.CurrentUserID(c))
	if err != nil || provider.ID != menu.ProviderID {
		resp.Forbidden(c, "forbidden")
		return nil, false
	}
	return menu, true
}

// GET /providers/:id/menus — public, active menus in their validity window.
func (mc *MenuController) ListForProvider(c *gin.Context) {
	providerID, err := strconv.Atoi(c.Param("id"))
	if err != nil || providerID <= 0 {
		resp.BadRequest(c, "invalid provider id")
		return
	}
	menus, err := mc.Menus.ListByProvider(uint(providerID), true)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, menus)
}

// GET /partner/menus — everything the owner has, active or not.
func (mc *MenuController) ListMine(c *gin.Context) {
	provider, err := mc.Providers.FindByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "provider profile not found")
		return
	}
	menus, err := mc.Menus.ListByProvider(provider.ID, false)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, menus)
}

type MenuItemRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Price        int64  `json:"price" binding:"min=0"`
	Category     string `json:"category" binding:"required"`
	IsVegetarian bool   `json:"isVegetarian"`
	IsAvailable  *bool  `json:"isAvailable"`
	ImageURL     string `json:"imageUrl"`
}

type CreateMenuRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	ValidFrom   time.Time         `json:"validFrom" binding:"required"`
	ValidTo     time.Time         `json:"validTo" binding:"required"`
	Items       []MenuItemRequest `json:"items" binding:"dive"`
}

// POST /partner/menus
func (mc *MenuController) Create(c *gin.Context) {
	provider, err := mc.Providers.FindByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "provider profile not found")
		return
	}

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !req.ValidTo.After(req.ValidFrom) {
		resp.BadRequest(c, "validTo must be after validFrom")
		return
	}

	menu := &entity.Menu{
		ProviderID:  provider.ID,
		Name:        req.Name,
		Description: req.Description,
		ValidFrom:   req.ValidFrom,
		ValidTo:     req.ValidTo,
		IsActive:    true,
	}
	for _, it := range req.Items {
		if !entity.ValidMenuCategory(it.Category) {
			resp.BadRequest(c, "invalid item category: "+it.Category)
			return
		}
		available := true
		if it.IsAvailable != nil {
			available = *it.IsAvailable
		}
		menu.Items = append(menu.Items, entity.MenuItem{
			Name:         it.Name,
			Description:  it.Description,
			Price:        it.Price,
			Category:     it.Category,
			IsVegetarian: it.IsVegetarian,
			IsAvailable:  available,
			ImageURL:     it.ImageURL,
		})
	}

	if err := mc.Menus.Create(menu); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, menu)
}

type UpdateMenuRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ValidFrom   *time.Time `json:"validFrom"`
	ValidTo     *time.Time `json:"validTo"`
	IsActive    *bool      `json:"isActive"`
}

// PATCH /partner/menus/:id
func (mc *MenuController) Update(c *gin.Context) {
	menu, ok := mc.ownedMenu(c)
	if !ok {
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidTo != nil {
		updates["valid_to"] = *req.ValidTo
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := mc.Menus.Update(menu.ID, updates); err != nil {
			resp.ServerError(c, err)
			return
		}
	}
	menu, err := mc.Menus.FindByID(menu.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, menu)
}

// POST /partner/menus/:id/items
func (mc *MenuController) AddItem(c *gin.Context) {
	menu, ok := mc.ownedMenu(c)
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !entity.ValidMenuCategory(req.Category) {
		resp.BadRequest(c, "invalid item category: "+req.Category)
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	item := &entity.MenuItem{
		MenuID:       menu.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsVegetarian: req.IsVegetarian,
		IsAvailable:  available,
		ImageURL:     req.ImageURL,
	}
	if err := mc.Menus.AddItem(item); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

type UpdateMenuItemRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Price        *int64  `json:"price"`
	Category     *string `json:"category"`
	IsVegetarian *bool   `json:"isVegetarian"`
	IsAvailable  *bool   `json:"isAvailable"`
	ImageURL     *string `json:"imageUrl"`
}

// PATCH /partner/menus/:id/items/:itemId
func (mc *MenuController) UpdateItem(c *gin.Context) {
	menu, ok := mc.ownedMenu(c)
	if !ok {
		return
	}
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || itemID <= 0 {
		resp.BadRequest(c, "invalid item id")
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			resp.BadRequest(c, "price must be >= 0")
			return
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		if !entity.ValidMenuCategory(*req.Category) {
			resp.BadRequest(c, "invalid item category: "+*req.Category)
			return
		}
		updates["category"] = *req.Category
	}
	if req.IsVegetarian != nil {
		updates["is_vegetarian"] = *req.IsVegetarian
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := mc.Menus.UpdateItem(menu.ID, uint(itemID), updates); err != nil {
			resp.ServerError(c, err)
			return
		}
	}
	item, err := mc.Menus.FindItem(menu.ID, uint(itemID))
	if err != nil {
		resp.NotFound(c, "item not found")
		return
	}
	resp.OK(c, item)
}

// DELETE /partner/menus/:id/items/:itemId
func (mc *MenuController) DeleteItem(c *gin.Context) {
	menu, ok := mc.ownedMenu(c)
	if !ok {
		return
	}
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || itemID <= 0 {
		resp.BadRequest(c, "invalid item id")
		return
	}
	if _, err := mc.Menus.FindItem(menu.ID, uint(itemID)); err != nil {
		resp.NotFound(c, "item not found")
		return
	}
	if err := mc.Menus.DeleteItem(menu.ID, uint(itemID)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "item deleted"})
}
