package handlers

import (
	"net/http"

	"integration-hub/internal/api/middleware"
	"integration-hub/internal/config"
	"integration-hub/internal/models"
	"integration-hub/internal/services"

	"github.com/gin-gonic/gin"
)

// NavLink is one entry in the dashboard navigation.
type NavLink struct {
	Href  string
	Label string
}

type DashboardHandler struct {
	*Renderer
	dashboardService   *services.DashboardService
	integrationService *services.IntegrationService
	cfg                *config.Config
}

func NewDashboardHandler(r *Renderer, dashboardService *services.DashboardService, integrationService *services.IntegrationService, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{
		Renderer:           r,
		dashboardService:   dashboardService,
		integrationService: integrationService,
		cfg:                cfg,
	}
}

// Home shows the current user's own integration counts and the pages
// their role can reach.
func (h *DashboardHandler) Home(c *gin.Context) {
	user := middleware.CurrentUser(c)

	data := gin.H{
		"title":    "Dashboard",
		"statuses": models.Statuses,
		"links":    navLinks(user),
	}
	if user.HasRole(models.RoleDeveloper, models.RoleAPIAdmin, models.RoleAdmin) {
		counts, err := h.dashboardService.CountByStatus(user.ID)
		if err != nil {
			h.ServerError(c, err)
			return
		}
		data["counts"] = counts
	}
	h.HTML(c, http.StatusOK, "dashboard.html", data)
}

// GetStatus is the operator overview of every integration
func (h *DashboardHandler) GetStatus(c *gin.Context) {
	counts, err := h.dashboardService.CountByStatus(0)
	if err != nil {
		h.ServerError(c, err)
		return
	}
	integrations, err := h.integrationService.GetIntegrations()
	if err != nil {
		h.ServerError(c, err)
		return
	}

	h.HTML(c, http.StatusOK, "operator_status.html", gin.H{
		"title":        "Status",
		"statuses":     models.Statuses,
		"counts":       counts,
		"integrations": integrations,
		"docLinks":     docLinks(h.cfg.Site.DocusaurusBaseURL, integrations),
	})
}

func navLinks(user *models.User) []NavLink {
	var links []NavLink
	if user.HasRole(models.RoleDeveloper, models.RoleAPIAdmin, models.RoleAdmin) {
		links = append(links, NavLink{"/developer/integrations", "My integrations"})
	}
	if user.HasRole(models.RoleAPIAdmin) {
		links = append(links, NavLink{"/api-admin/integrations", "Manage all API integrations"})
	}
	if user.HasRole(models.RoleOperator, models.RoleAdmin, models.RoleAPIAdmin) {
		links = append(links, NavLink{"/operator/status", "Integration status"})
	}
	if user.HasRole(models.RoleAdmin) {
		links = append(links, NavLink{"/admin/users", "Manage users"}, NavLink{"/admin/settings", "Site settings"})
	}
	return links
}
