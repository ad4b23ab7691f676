package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuscms/backend/internal/http/response"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/services"
)

// PublicHandler serves the unauthenticated visitor-facing routes. The site is
// addressed by subdomain path param so the same deployment can front many
// institutions.
type PublicHandler struct {
	log           *logger.Logger
	publicService services.PublicService
}

func NewPublicHandler(log *logger.Logger, publicService services.PublicService) *PublicHandler {
	return &PublicHandler{
		log:           log.With("handler", "PublicHandler"),
		publicService: publicService,
	}
}

func (h *PublicHandler) ListPublished(c *gin.Context) {
	pages, err := h.publicService.ListPublished(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pages": pages})
}

func (h *PublicHandler) GetPublishedBySlug(c *gin.Context) {
	page, err := h.publicService.GetPublishedBySlug(c.Request.Context(), c.Param("subdomain"), c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"page": page})
}
