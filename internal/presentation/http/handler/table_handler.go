package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/application/service"
	"github.com/minthuka/bookpos-api/internal/presentation/http/dto/request"
	"github.com/minthuka/bookpos-api/internal/presentation/http/dto/response"
)

// TableHandler handles dining table HTTP requests
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// ListTables handles listing tables with occupancy
// @Summary List Tables
// @Tags tables
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /tables [get]
func (h *TableHandler) ListTables(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	tables, err := h.tableService.ListTables(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tables retrieved successfully", gin.H{"tables": tables})
}

// GetTable handles fetching a table
// @Summary Get Table
// @Tags tables
// @Security BearerAuth
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.APIResponse
// @Router /tables/{id} [get]
func (h *TableHandler) GetTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table retrieved successfully", gin.H{"table": table})
}

// CreateTable handles table creation
// @Summary Create Table
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateTableRequest true "Table data"
// @Success 201 {object} response.APIResponse
// @Router /tables [post]
func (h *TableHandler) CreateTable(c *gin.Context) {
	var req request.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.CreateTable(c.Request.Context(), &service.CreateTableInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Table created successfully", gin.H{"table": table})
}

// UpdateTable handles table updates
// @Summary Update Table
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body request.UpdateTableRequest true "Table data"
// @Success 200 {object} response.APIResponse
// @Router /tables/{id} [put]
func (h *TableHandler) UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req request.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.UpdateTable(c.Request.Context(), id, &service.UpdateTableInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table updated successfully", gin.H{"table": table})
}

// DeleteTable handles table deletion
// @Summary Delete Table
// @Tags tables
// @Security BearerAuth
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.APIResponse
// @Router /tables/{id} [delete]
func (h *TableHandler) DeleteTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	if err := h.tableService.DeleteTable(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table deleted successfully", nil)
}

// MoveSale handles relocating a running sale to another table
// @Summary Move Sale
// @Description Move the open sale on this table to another free table
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Source table ID"
// @Param request body request.MoveSaleRequest true "Target table"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /tables/{id}/move [post]
func (h *TableHandler) MoveSale(c *gin.Context) {
	fromID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req request.MoveSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	toID, err := uuid.Parse(req.ToTableID)
	if err != nil {
		response.BadRequest(c, "Invalid target table ID")
		return
	}

	if err := h.tableService.MoveSale(c.Request.Context(), fromID, toID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale moved successfully", nil)
}

// ClearTable handles the admin occupancy fix-up
// @Summary Clear Table
// @Description Unconditionally free a table without touching its sale
// @Tags tables
// @Security BearerAuth
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.APIResponse
// @Router /tables/{id}/clear [post]
func (h *TableHandler) ClearTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	if err := h.tableService.ClearTable(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table cleared", nil)
}
