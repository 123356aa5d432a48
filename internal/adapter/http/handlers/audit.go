package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cmms/internal/adapter/http/mapper"
	"cmms/internal/adapter/http/middleware"
	"cmms/internal/app/service"
	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

type AuditHandler struct {
	auditService ports.AuditService
}

func NewAuditHandler(auditService ports.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) ListEntries(c *gin.Context) {
	query := c.Request.URL.Query()
	filter := domain.AuditFilter{
		Action: domain.AuditAction(query.Get("action")),
		Page:   service.ParsePage(query),
	}

	page, err := h.auditService.ListEntries(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		respondError(c, err, "failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, mapper.ToAuditPage(page))
}
