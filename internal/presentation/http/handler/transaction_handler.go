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

// TransactionHandler handles bookkeeping ledger HTTP requests
type TransactionHandler struct {
	txnService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txnService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// CreateTransaction handles recording a ledger entry
// @Summary Create Transaction
// @Tags transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.TransactionRequest true "Transaction data"
// @Success 201 {object} response.APIResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input, ok := h.buildInput(c, &req)
	if !ok {
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), *userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transaction created successfully", gin.H{"transaction": txn})
}

// GetTransaction handles fetching a ledger entry
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.txnService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction retrieved successfully", gin.H{"transaction": txn})
}

// UpdateTransaction handles updating a hand-entered ledger entry
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input, ok := h.buildInput(c, &req)
	if !ok {
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction updated successfully", gin.H{"transaction": txn})
}

// DeleteTransaction handles deleting a hand-entered ledger entry
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.txnService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction deleted successfully", nil)
}

// ListTransactions handles listing ledger entries with filters
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	params := &repository.TransactionFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     c.Query("search"),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Pagination.Validate()

	if v := c.Query("category_id"); v != "" {
		categoryID, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		params.CategoryID = &categoryID
	}
	if v := c.Query("user_id"); v != "" {
		userID, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		params.UserID = &userID
	}
	if v := c.Query("type"); v != "" {
		txnType, ok := parseTransactionType(v)
		if !ok {
			response.BadRequest(c, "Invalid transaction type")
			return
		}
		params.Type = &txnType
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

	result, err := h.txnService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// ListCategories handles listing ledger categories
func (h *TransactionHandler) ListCategories(c *gin.Context) {
	categories, err := h.txnService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// CreateCategory handles ledger category creation
func (h *TransactionHandler) CreateCategory(c *gin.Context) {
	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	txnType, ok := parseTransactionType(req.Type)
	if req.Type != "" && !ok {
		response.BadRequest(c, "Invalid transaction type")
		return
	}

	category, err := h.txnService.CreateCategory(c.Request.Context(), &service.CategoryInput{
		Name: req.Name,
		Type: txnType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created successfully", gin.H{"category": category})
}

// UpdateCategory handles ledger category updates
func (h *TransactionHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	txnType, typeOK := parseTransactionType(req.Type)
	if req.Type != "" && !typeOK {
		response.BadRequest(c, "Invalid transaction type")
		return
	}

	category, err := h.txnService.UpdateCategory(c.Request.Context(), id, &service.CategoryInput{
		Name: req.Name,
		Type: txnType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category updated successfully", gin.H{"category": category})
}

// DeleteCategory handles ledger category deletion
func (h *TransactionHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.txnService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category deleted successfully", nil)
}

func (h *TransactionHandler) buildInput(c *gin.Context, req *request.TransactionRequest) (*service.TransactionInput, bool) {
	input := &service.TransactionInput{
		Amount:      req.Amount,
		Quantity:    req.Quantity,
		Description: req.Description,
		Date:        req.Date,
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return nil, false
		}
		input.CategoryID = categoryID
	}
	if req.Type != "" {
		txnType, ok := parseTransactionType(req.Type)
		if !ok {
			response.BadRequest(c, "Invalid transaction type")
			return nil, false
		}
		input.Type = txnType
	}
	return input, true
}

func parseTransactionType(s string) (enum.TransactionType, bool) {
	switch s {
	case "income":
		return enum.TransactionTypeIncome, true
	case "expense":
		return enum.TransactionTypeExpense, true
	}
	return 0, false
}
