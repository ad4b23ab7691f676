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

type PageHandler struct {
	log         *logger.Logger
	pageService services.PageService
}

func NewPageHandler(log *logger.Logger, pageService services.PageService) *PageHandler {
	return &PageHandler{
		log:         log.With("handler", "PageHandler"),
		pageService: pageService,
	}
}

func (h *PageHandler) ListPages(c *gin.Context) {
	pages, err := h.pageService.ListPages(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pages": pages})
}

func (h *PageHandler) GetPage(c *gin.Context) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	page, err := h.pageService.GetPage(c.Request.Context(), pageID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"page": page})
}

func (h *PageHandler) GetPageBySlug(c *gin.Context) {
	page, err := h.pageService.GetPageBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"page": page})
}

func (h *PageHandler) CreatePage(c *gin.Context) {
	var req struct {
		Name       string              `json:"name"`
		Slug       string              `json:"slug"`
		TemplateID *uuid.UUID          `json:"template_id,omitempty"`
		Document   *types.PageDocument `json:"document,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.pageService.CreatePage(c.Request.Context(), req.Name, req.Slug, req.TemplateID, req.Document)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"page": result.Page, "version_number": result.VersionNumber})
}

func (h *PageHandler) UpdateDocument(c *gin.Context) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Document      *types.PageDocument `json:"document"`
		ChangeSummary string              `json:"change_summary,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.pageService.UpdateDocument(c.Request.Context(), pageID, req.Document, req.ChangeSummary)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"page": result.Page, "version_number": result.VersionNumber})
}

func (h *PageHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *PageHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *PageHandler) setPublished(c *gin.Context, published bool) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	toggle := h.pageService.Publish
	if !published {
		toggle = h.pageService.Unpublish
	}
	res, err := toggle(c.Request.Context(), pageID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"page": res.Page})
}

func (h *PageHandler) DeletePage(c *gin.Context) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.pageService.DeletePage(c.Request.Context(), pageID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func (h *PageHandler) DuplicatePage(c *gin.Context) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.pageService.DuplicatePage(c.Request.Context(), pageID, req.Name, req.Slug)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"page": result.Page, "version_number": result.VersionNumber})
}
