package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscms/backend/internal/http/response"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/services"
)

type VersionHandler struct {
	log            *logger.Logger
	versionService services.VersionService
}

func NewVersionHandler(log *logger.Logger, versionService services.VersionService) *VersionHandler {
	return &VersionHandler{
		log:            log.With("handler", "VersionHandler"),
		versionService: versionService,
	}
}

func (h *VersionHandler) ListVersions(c *gin.Context) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	versions, err := h.versionService.ListVersions(c.Request.Context(), pageID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"versions": versions})
}

func (h *VersionHandler) GetVersion(c *gin.Context) {
	pageID, versionNumber, ok := h.parseVersionPath(c)
	if !ok {
		return
	}
	version, err := h.versionService.GetVersion(c.Request.Context(), pageID, versionNumber)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"version": version})
}

func (h *VersionHandler) RestoreVersion(c *gin.Context) {
	pageID, versionNumber, ok := h.parseVersionPath(c)
	if !ok {
		return
	}
	result, err := h.versionService.RestoreVersion(c.Request.Context(), pageID, versionNumber)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"page": result.Page, "version_number": result.VersionNumber})
}

func (h *VersionHandler) parseVersionPath(c *gin.Context) (uuid.UUID, int, bool) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, 0, false
	}
	versionNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_version_number", err)
		return uuid.Nil, 0, false
	}
	return pageID, versionNumber, true
}
