package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/campuscms/backend/internal/http/handlers"
	httpMW "github.com/campuscms/backend/internal/http/middleware"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/tenant"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware
	RateLimiter    *httpMW.RateLimiter

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	PageHandler     *httpH.PageHandler
	VersionHandler  *httpH.VersionHandler
	TemplateHandler *httpH.TemplateHandler
	PublicHandler   *httpH.PublicHandler

	ServiceName  string
	ExtraOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestMeta())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.ExtraOrigins))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit())
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Visitor-facing published content (public)
		if cfg.PublicHandler != nil {
			api.GET("/public/:subdomain/pages", cfg.PublicHandler.ListPublished)
			api.GET("/public/:subdomain/pages/:slug", cfg.PublicHandler.GetPublishedBySlug)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Pages
		if cfg.PageHandler != nil {
			protected.GET("/pages", cfg.PageHandler.ListPages)
			protected.POST("/pages", cfg.PageHandler.CreatePage)
			protected.GET("/pages/:id", cfg.PageHandler.GetPage)
			protected.GET("/pages/slug/:slug", cfg.PageHandler.GetPageBySlug)
			protected.PUT("/pages/:id/document", cfg.PageHandler.UpdateDocument)
			protected.POST("/pages/:id/publish", cfg.PageHandler.Publish)
			protected.POST("/pages/:id/unpublish", cfg.PageHandler.Unpublish)
			protected.DELETE("/pages/:id", cfg.PageHandler.DeletePage)
			protected.POST("/pages/:id/duplicate", cfg.PageHandler.DuplicatePage)
		}

		// Version ledger
		if cfg.VersionHandler != nil {
			protected.GET("/pages/:id/versions", cfg.VersionHandler.ListVersions)
			protected.GET("/pages/:id/versions/:number", cfg.VersionHandler.GetVersion)
			protected.POST("/pages/:id/versions/:number/restore", cfg.VersionHandler.RestoreVersion)
		}

		// Templates
		if cfg.TemplateHandler != nil {
			protected.GET("/templates", cfg.TemplateHandler.ListTemplates)
			protected.GET("/templates/:id", cfg.TemplateHandler.GetTemplate)
			if cfg.AuthMiddleware != nil {
				protected.POST("/templates",
					cfg.AuthMiddleware.RequireRole(tenant.RoleSuperAdmin),
					cfg.TemplateHandler.CreateTemplate)
			}
		}
	}

	return r
}
