package handlers

import (
	"net/http"

	"integration-hub/internal/services"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	*Renderer
	auditService *services.AuditService
}

func NewAuditHandler(r *Renderer, auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{Renderer: r, auditService: auditService}
}

// GetAuditLogs shows the most recent audit entries
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	logs, err := h.auditService.Recent(100)
	if err != nil {
		h.ServerError(c, err)
		return
	}
	h.HTML(c, http.StatusOK, "admin_audit.html", gin.H{
		"title": "Audit log",
		"logs":  logs,
	})
}
