package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/application/service"
	"github.com/minthuka/bookpos-api/internal/presentation/http/dto/request"
	"github.com/minthuka/bookpos-api/internal/presentation/http/dto/response"
)

// MenuHandler handles menu catalog HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// GetMenuTree handles fetching the full catalog for the order-entry screen
// @Summary Get Menu
// @Tags menu
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /menu [get]
func (h *MenuHandler) GetMenuTree(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	tree, err := h.menuService.GetMenuTree(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu retrieved successfully", gin.H{"categories": tree})
}

// ListCategories handles listing menu categories
func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.menuService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// CreateCategory handles menu category creation
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req request.MenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.menuService.CreateCategory(c.Request.Context(), &service.MenuCategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created successfully", gin.H{"category": category})
}

// UpdateCategory handles menu category updates
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req request.MenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.menuService.UpdateCategory(c.Request.Context(), id, &service.MenuCategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category updated successfully", gin.H{"category": category})
}

// DeleteCategory handles menu category deletion
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.menuService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category deleted successfully", nil)
}

// ListItems handles listing menu items
func (h *MenuHandler) ListItems(c *gin.Context) {
	var categoryID *uuid.UUID
	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		categoryID = &id
	}

	items, err := h.menuService.ListMenuItems(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Items retrieved successfully", gin.H{"items": items})
}

// CreateItem handles menu item creation
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req request.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), &service.MenuItemInput{
		CategoryID: categoryID,
		Name:       req.Name,
		Price:      req.Price,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item created successfully", gin.H{"item": item})
}

// UpdateItem handles menu item updates
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.MenuItemInput{
		Name:     req.Name,
		Price:    req.Price,
		IsActive: req.IsActive,
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = categoryID
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item updated successfully", gin.H{"item": item})
}

// DeleteItem handles menu item deletion
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.menuService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item deleted successfully", nil)
}

// CreateOptionGroup handles option group creation
func (h *MenuHandler) CreateOptionGroup(c *gin.Context) {
	var req request.OptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	group, err := h.menuService.CreateOptionGroup(c.Request.Context(), &service.OptionGroupInput{
		MenuItemID:  menuItemID,
		Name:        req.Name,
		IsRequired:  req.IsRequired,
		MultiSelect: req.MultiSelect,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Option group created successfully", gin.H{"option_group": group})
}

// UpdateOptionGroup handles option group updates
func (h *MenuHandler) UpdateOptionGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid option group ID")
		return
	}

	var req request.OptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.menuService.UpdateOptionGroup(c.Request.Context(), id, &service.OptionGroupInput{
		Name:        req.Name,
		IsRequired:  req.IsRequired,
		MultiSelect: req.MultiSelect,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Option group updated successfully", gin.H{"option_group": group})
}

// DeleteOptionGroup handles option group deletion
func (h *MenuHandler) DeleteOptionGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid option group ID")
		return
	}

	if err := h.menuService.DeleteOptionGroup(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Option group deleted successfully", nil)
}

// CreateOption handles menu option creation
func (h *MenuHandler) CreateOption(c *gin.Context) {
	var req request.MenuOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		response.BadRequest(c, "Invalid option group ID")
		return
	}

	option, err := h.menuService.CreateOption(c.Request.Context(), &service.MenuOptionInput{
		GroupID:         groupID,
		Name:            req.Name,
		PriceAdjustment: req.PriceAdjustment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Option created successfully", gin.H{"option": option})
}

// UpdateOption handles menu option updates
func (h *MenuHandler) UpdateOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid option ID")
		return
	}

	var req request.MenuOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	option, err := h.menuService.UpdateOption(c.Request.Context(), id, &service.MenuOptionInput{
		Name:            req.Name,
		PriceAdjustment: req.PriceAdjustment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Option updated successfully", gin.H{"option": option})
}

// DeleteOption handles menu option deletion
func (h *MenuHandler) DeleteOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid option ID")
		return
	}

	if err := h.menuService.DeleteOption(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Option deleted successfully", nil)
}
