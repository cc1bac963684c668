package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/application/service"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/minthuka/bookpos-api/internal/domain/repository"
	"github.com/minthuka/bookpos-api/internal/presentation/http/dto/request"
	"github.com/minthuka/bookpos-api/internal/presentation/http/dto/response"
	"github.com/minthuka/bookpos-api/pkg/pagination"
)

// SaleHandler handles POS sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// SubmitOrder handles order submission
// @Summary Submit Order
// @Description Open a sale or append items to the running one
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SubmitOrderRequest true "Order data"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sales/orders [post]
func (h *SaleHandler) SubmitOrder(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.TableID != "" && req.SaleID != "" {
		response.BadRequest(c, "table_id and sale_id are mutually exclusive")
		return
	}

	input := &service.SubmitOrderInput{
		UserID:       *userID,
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
	}
	if req.TableID != "" {
		tableID, err := uuid.Parse(req.TableID)
		if err != nil {
			response.BadRequest(c, "Invalid table ID")
			return
		}
		input.TableID = &tableID
	}
	if req.SaleID != "" {
		saleID, err := uuid.Parse(req.SaleID)
		if err != nil {
			response.BadRequest(c, "Invalid sale ID")
			return
		}
		input.SaleID = &saleID
	}
	if req.OrderType != "" {
		orderType, ok := parseOrderType(req.OrderType)
		if !ok {
			response.BadRequest(c, "Invalid order type")
			return
		}
		input.OrderType = &orderType
	}

	for _, item := range req.Items {
		itemInput := service.OrderItemInput{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Notes:     item.Notes,
		}
		if item.MenuItemID != "" {
			menuItemID, err := uuid.Parse(item.MenuItemID)
			if err != nil {
				response.BadRequest(c, "Invalid menu item ID")
				return
			}
			itemInput.MenuItemID = &menuItemID
		}
		for _, option := range item.Options {
			optionInput := service.OrderItemOptionInput{
				GroupName:       option.GroupName,
				Name:            option.Name,
				PriceAdjustment: option.PriceAdjustment,
			}
			if option.OptionID != "" {
				optionID, err := uuid.Parse(option.OptionID)
				if err != nil {
					response.BadRequest(c, "Invalid option ID")
					return
				}
				optionInput.OptionID = &optionID
			}
			itemInput.Options = append(itemInput.Options, optionInput)
		}
		input.Items = append(input.Items, itemInput)
	}

	result, err := h.saleService.SubmitOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Created {
		response.Created(c, "Order opened", result)
		return
	}
	response.OK(c, "Order updated", result)
}

// GetSale handles fetching a sale with its items
// @Summary Get Sale
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", gin.H{"sale": sale})
}

// ListSales handles listing sales with filters
// @Summary List Sales
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	params := &repository.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     c.Query("search"),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Pagination.Validate()

	if v := c.Query("table_id"); v != "" {
		tableID, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid table ID")
			return
		}
		params.TableID = &tableID
	}
	if v := c.Query("user_id"); v != "" {
		userID, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		params.UserID = &userID
	}
	if v := c.Query("status"); v != "" {
		status, ok := parseSaleStatus(v)
		if !ok {
			response.BadRequest(c, "Invalid sale status")
			return
		}
		params.Status = &status
	}
	if v := c.Query("order_type"); v != "" {
		orderType, ok := parseOrderType(v)
		if !ok {
			response.BadRequest(c, "Invalid order type")
			return
		}
		params.OrderType = &orderType
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &t
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Pay handles sale checkout
// @Summary Pay Sale
// @Description Complete an open sale and book its income transaction
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sales/{id}/pay [post]
func (h *SaleHandler) Pay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.PaySaleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	if err := h.saleService.Pay(c.Request.Context(), id, req.PaymentMethod); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale paid successfully", nil)
}

// CancelSale handles whole-sale cancellation
// @Summary Cancel Sale
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id}/cancel [post]
func (h *SaleHandler) CancelSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.CancelSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled", nil)
}

// UncancelSale handles restoring a cancelled sale
// @Summary Uncancel Sale
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id}/uncancel [post]
func (h *SaleHandler) UncancelSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.UncancelSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale restored", nil)
}

// CancelItem handles cancelling a single sale line
// @Summary Cancel Sale Item
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sale ID"
// @Param itemId path string true "Sale item ID"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id}/items/{itemId}/cancel [post]
func (h *SaleHandler) CancelItem(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid sale item ID")
		return
	}

	result, err := h.saleService.CancelItem(c.Request.Context(), saleID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item cancelled", result)
}

// UncancelItem handles restoring a cancelled sale line
// @Summary Uncancel Sale Item
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sale ID"
// @Param itemId path string true "Sale item ID"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id}/items/{itemId}/uncancel [post]
func (h *SaleHandler) UncancelItem(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid sale item ID")
		return
	}

	result, err := h.saleService.UncancelItem(c.Request.Context(), saleID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item restored", result)
}

func parseOrderType(s string) (enum.OrderType, bool) {
	switch s {
	case "dine_in":
		return enum.OrderTypeDineIn, true
	case "take_away":
		return enum.OrderTypeTakeAway, true
	}
	return 0, false
}

func parseSaleStatus(s string) (enum.SaleStatus, bool) {
	switch s {
	case "open":
		return enum.SaleStatusOpen, true
	case "completed":
		return enum.SaleStatusCompleted, true
	case "cancelled":
		return enum.SaleStatusCancelled, true
	}
	return 0, false
}
