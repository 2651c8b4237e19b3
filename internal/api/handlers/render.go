package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"integration-hub/internal/api/middleware"
	"integration-hub/internal/config"
	"integration-hub/internal/models"
	"integration-hub/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const flashCookie = "hub_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Renderer wraps gin's HTML rendering with the data every page needs.
type Renderer struct {
	settingService *services.SettingService
	logger         *zap.Logger
	cfg            *config.Config
}

func NewRenderer(cfg *config.Config, logger *zap.Logger) *Renderer {
	return &Renderer{
		settingService: services.NewSettingService(cfg),
		logger:         logger,
		cfg:            cfg,
	}
}

// HTML renders a page template with the site name, current user, pending
// flash and an empty error map filled in.
func (r *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["siteName"] = r.settingService.SiteName()
	data["user"] = middleware.CurrentUser(c)
	if _, ok := data["flash"]; !ok {
		data["flash"] = r.takeFlash(c)
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = map[string]string{}
	}
	c.HTML(status, name, data)
}

// RedirectWithFlash stores a flash message and answers 303 to location.
func (r *Renderer) RedirectWithFlash(c *gin.Context, location, category, message string) {
	r.setFlash(c, category, message)
	c.Redirect(http.StatusSeeOther, location)
}

// ServerError logs err and answers a bare 500.
func (r *Renderer) ServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	r.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

func (r *Renderer) setFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookie, category+"|"+message, 60, "/", "", r.cfg.Session.Secure, true)
}

func (r *Renderer) takeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", r.cfg.Session.Secure, true)

	category, message, ok := strings.Cut(raw, "|")
	if !ok {
		return &Flash{Category: "info", Message: raw}
	}
	return &Flash{Category: category, Message: message}
}

// HomePath is where a user lands after login.
func HomePath(user *models.User) string {
	switch user.RoleName() {
	case models.RoleAdmin:
		return "/admin/users"
	case models.RoleAPIAdmin:
		return "/api-admin/integrations"
	case models.RoleOperator:
		return "/operator/status"
	default:
		return "/developer/"
	}
}

// safeNext accepts only same-site relative paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer is treated as a missing row.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.String(http.StatusNotFound, "Not Found")
		return 0, false
	}
	return uint(id), true
}

func auditEntry(c *gin.Context, userID uint, action, resource, resourceID string, details map[string]interface{}) services.AuditEntry {
	return services.AuditEntry{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	}
}
