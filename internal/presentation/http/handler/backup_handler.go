package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/minthuka/bookpos-api/internal/application/service"
	"github.com/minthuka/bookpos-api/internal/presentation/http/dto/response"
)

// BackupHandler handles database backup HTTP requests
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// CreateBackup handles running a new database dump
// @Summary Create Backup
// @Tags backups
// @Security BearerAuth
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /backups [post]
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	backup, err := h.backupService.CreateBackup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Backup created successfully", gin.H{"backup": backup})
}

// ListBackups handles listing existing dumps
func (h *BackupHandler) ListBackups(c *gin.Context) {
	backups, err := h.backupService.ListBackups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Backups retrieved successfully", gin.H{"backups": backups})
}

// DeleteBackup handles removing a dump by file name
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	name := c.Param("name")
	if err := h.backupService.DeleteBackup(c.Request.Context(), name); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Backup deleted successfully", nil)
}
