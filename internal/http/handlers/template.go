package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/campuscms/backend/internal/domain"
	"github.com/campuscms/backend/internal/http/response"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/services"
)

type TemplateHandler struct {
	log             *logger.Logger
	templateService services.TemplateService
}

func NewTemplateHandler(log *logger.Logger, templateService services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		log:             log.With("handler", "TemplateHandler"),
		templateService: templateService,
	}
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": templates})
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	template, err := h.templateService.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"template": template})
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req struct {
		Name        string              `json:"name"`
		Description string              `json:"description"`
		Category    string              `json:"category"`
		Thumbnail   string              `json:"thumbnail"`
		Document    *types.PageDocument `json:"document"`
		IsPublic    bool                `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	template, err := h.templateService.CreateTemplate(c.Request.Context(), services.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
		Document:    req.Document,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"template": template})
}
