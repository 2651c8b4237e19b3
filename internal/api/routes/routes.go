package routes

import (
	"net/http"

	"integration-hub/internal/api/handlers"
	"integration-hub/internal/api/middleware"
	"integration-hub/internal/config"
	"integration-hub/internal/models"
	"integration-hub/internal/services"
	"integration-hub/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// SetupRoutes wires middleware, templates and every page onto r. Stub files
// are written through stubFS.
func SetupRoutes(r *gin.Engine, cfg *config.Config, logger *zap.Logger, stubFS afero.Fs) error {
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	handlers.UseFormFieldNames()

	// Initialize services
	authService := services.NewAuthService(cfg)
	userService := services.NewUserService(cfg)
	settingService := services.NewSettingService(cfg)
	auditService := services.NewAuditService(logger)
	dashboardService := services.NewDashboardService()
	integrationService := services.NewIntegrationService(
		services.NewStubGenerator(stubFS, cfg.Paths.Stubs),
		logger,
	)

	// Initialize handlers
	renderer := handlers.NewRenderer(cfg, logger)
	authHandler := handlers.NewAuthHandler(renderer, authService, auditService, cfg)
	userHandler := handlers.NewUserHandler(renderer, userService, auditService)
	settingHandler := handlers.NewSettingHandler(renderer, settingService, auditService)
	auditHandler := handlers.NewAuditHandler(renderer, auditService)
	dashboardHandler := handlers.NewDashboardHandler(renderer, dashboardService, integrationService, cfg)
	apiAdminHandler := handlers.NewIntegrationHandler(renderer, integrationService, auditService, handlers.APIAdminScope, cfg)
	developerHandler := handlers.NewIntegrationHandler(renderer, integrationService, auditService, handlers.DeveloperScope, cfg)

	// Middleware
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.LoadSession(authService, cfg.Session.CookieName))

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Integration hub is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public and session routes
	r.GET("/", authHandler.Index)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", middleware.RequireLogin(), authHandler.Logout)

	// Admin routes
	admin := r.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", userHandler.GetUsers)
		admin.POST("/users/set-role/:id", userHandler.SetRole)
		admin.POST("/users/set-active/:id", userHandler.SetActive)
		admin.GET("/settings", settingHandler.ShowSetting)
		admin.POST("/settings", settingHandler.SaveSetting)
		admin.GET("/audit", auditHandler.GetAuditLogs)
	}

	// API admin routes
	apiAdmin := r.Group("/api-admin/integrations", middleware.RequireRole(models.RoleAPIAdmin))
	registerIntegrationRoutes(apiAdmin, apiAdminHandler)

	// Developer routes
	developer := r.Group("/developer")
	{
		developer.GET("/", middleware.RequireLogin(), dashboardHandler.Home)

		integrations := developer.Group("/integrations",
			middleware.RequireRole(models.RoleDeveloper, models.RoleAPIAdmin, models.RoleAdmin))
		registerIntegrationRoutes(integrations, developerHandler)
	}

	// Operator routes
	operator := r.Group("/operator", middleware.RequireRole(models.RoleOperator, models.RoleAdmin, models.RoleAPIAdmin))
	{
		operator.GET("/status", dashboardHandler.GetStatus)
	}

	return nil
}

func registerIntegrationRoutes(g *gin.RouterGroup, h *handlers.IntegrationHandler) {
	g.GET("", h.GetIntegrations)
	g.GET("/new", h.NewIntegration)
	g.POST("/new", h.CreateIntegration)
	g.GET("/:id/edit", h.EditIntegration)
	g.POST("/:id/edit", h.UpdateIntegration)
	g.POST("/:id/delete", h.DeleteIntegration)
	g.POST("/:id/toggle", h.ToggleIntegration)
	g.POST("/:id/test", h.TestIntegration)
}
