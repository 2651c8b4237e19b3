package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"integration-hub/internal/api/middleware"
	"integration-hub/internal/config"
	"integration-hub/internal/models"
	"integration-hub/internal/services"

	"github.com/gin-gonic/gin"
)

// IntegrationScope describes one mount point of the integration pages.
type IntegrationScope struct {
	Base      string
	Title     string
	Noun      string
	OwnedOnly bool
}

var (
	APIAdminScope = IntegrationScope{
		Base:  "/api-admin/integrations",
		Title: "All API integrations",
		Noun:  "API integration",
	}
	DeveloperScope = IntegrationScope{
		Base:      "/developer/integrations",
		Title:     "My integrations",
		Noun:      "Integration",
		OwnedOnly: true,
	}
)

type IntegrationHandler struct {
	*Renderer
	integrationService *services.IntegrationService
	auditService       *services.AuditService
	scope              IntegrationScope
	cfg                *config.Config
}

func NewIntegrationHandler(r *Renderer, integrationService *services.IntegrationService, auditService *services.AuditService, scope IntegrationScope, cfg *config.Config) *IntegrationHandler {
	return &IntegrationHandler{
		Renderer:           r,
		integrationService: integrationService,
		auditService:       auditService,
		scope:              scope,
		cfg:                cfg,
	}
}

// GetIntegrations lists the integrations visible in this scope
func (h *IntegrationHandler) GetIntegrations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var (
		integrations []models.ApiIntegration
		err          error
	)
	if h.scope.OwnedOnly {
		integrations, err = h.integrationService.GetIntegrationsByOwner(user.ID)
	} else {
		integrations, err = h.integrationService.GetIntegrations()
	}
	if err != nil {
		h.ServerError(c, err)
		return
	}

	h.HTML(c, http.StatusOK, "integrations.html", gin.H{
		"title":        h.scope.Title,
		"base":         h.scope.Base,
		"integrations": integrations,
		"showOwner":    !h.scope.OwnedOnly,
		"docLinks":     docLinks(h.cfg.Site.DocusaurusBaseURL, integrations),
	})
}

// NewIntegration renders an empty form
func (h *IntegrationHandler) NewIntegration(c *gin.Context) {
	h.renderForm(c, http.StatusOK, nil, IntegrationForm{
		HTTPMethod: "GET",
		Status:     models.StatusEnabled,
		AuthType:   models.AuthAPIKey,
	}, nil)
}

// CreateIntegration stores a new integration owned by the current user
func (h *IntegrationHandler) CreateIntegration(c *gin.Context) {
	var form IntegrationForm
	if err := c.ShouldBind(&form); err != nil {
		errs, _ := fieldErrors(err)
		h.renderForm(c, http.StatusBadRequest, nil, form, errs)
		return
	}

	user := middleware.CurrentUser(c)
	integration, err := h.integrationService.CreateIntegration(user, form.data())
	if err != nil {
		h.ServerError(c, err)
		return
	}

	h.audit(c, "create", integration, map[string]interface{}{
		"name":   integration.Name,
		"status": integration.Status,
	})
	h.RedirectWithFlash(c, h.scope.Base, "success", h.scope.Noun+" created.")
}

// EditIntegration renders the form for an existing integration
func (h *IntegrationHandler) EditIntegration(c *gin.Context) {
	integration, ok := h.load(c)
	if !ok {
		return
	}
	h.renderForm(c, http.StatusOK, integration, integrationFormFrom(integration), nil)
}

// UpdateIntegration saves the descriptive fields. Status is left alone.
func (h *IntegrationHandler) UpdateIntegration(c *gin.Context) {
	integration, ok := h.load(c)
	if !ok {
		return
	}

	var form IntegrationForm
	if err := c.ShouldBind(&form); err != nil {
		errs, _ := fieldErrors(err)
		h.renderForm(c, http.StatusBadRequest, integration, form, errs)
		return
	}

	updated, err := h.integrationService.UpdateIntegration(integration.ID, form.data())
	if err != nil {
		if errors.Is(err, services.ErrIntegrationNotFound) {
			c.String(http.StatusNotFound, "Not Found")
			return
		}
		h.ServerError(c, err)
		return
	}

	h.audit(c, "update", updated, map[string]interface{}{"name": updated.Name})
	h.RedirectWithFlash(c, h.scope.Base, "success", h.scope.Noun+" updated.")
}

// DeleteIntegration removes an integration
func (h *IntegrationHandler) DeleteIntegration(c *gin.Context) {
	integration, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.integrationService.DeleteIntegration(integration.ID); err != nil {
		if errors.Is(err, services.ErrIntegrationNotFound) {
			c.String(http.StatusNotFound, "Not Found")
			return
		}
		h.ServerError(c, err)
		return
	}

	h.audit(c, "delete", integration, map[string]interface{}{"name": integration.Name})
	h.RedirectWithFlash(c, h.scope.Base, "info", h.scope.Noun+" deleted.")
}

// ToggleIntegration flips an integration between enabled and disabled
func (h *IntegrationHandler) ToggleIntegration(c *gin.Context) {
	integration, ok := h.load(c)
	if !ok {
		return
	}

	toggled, err := h.integrationService.ToggleIntegration(integration.ID)
	if err != nil {
		if errors.Is(err, services.ErrIntegrationNotFound) {
			c.String(http.StatusNotFound, "Not Found")
			return
		}
		h.ServerError(c, err)
		return
	}

	h.audit(c, "toggle", toggled, map[string]interface{}{
		"from": integration.Status,
		"to":   toggled.Status,
	})
	h.RedirectWithFlash(c, h.scope.Base, "success", "Integration status updated.")
}

// TestIntegration runs the simulated health check
func (h *IntegrationHandler) TestIntegration(c *gin.Context) {
	integration, ok := h.load(c)
	if !ok {
		return
	}

	tested, changed, err := h.integrationService.TestIntegration(integration.ID)
	if err != nil {
		if errors.Is(err, services.ErrIntegrationNotFound) {
			c.String(http.StatusNotFound, "Not Found")
			return
		}
		h.ServerError(c, err)
		return
	}

	if !changed {
		h.RedirectWithFlash(c, h.scope.Base, "info", "Integration appears healthy. No action taken.")
		return
	}
	h.audit(c, "test", tested, map[string]interface{}{
		"from": integration.Status,
		"to":   tested.Status,
	})
	h.RedirectWithFlash(c, h.scope.Base, "success", "Integration test simulated and set to enabled.")
}

// load fetches the :id integration and enforces ownership in owner-scoped
// mounts. It writes the 404/403 response itself.
func (h *IntegrationHandler) load(c *gin.Context) (*models.ApiIntegration, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}

	integration, err := h.integrationService.GetIntegration(id)
	if err != nil {
		if errors.Is(err, services.ErrIntegrationNotFound) {
			c.String(http.StatusNotFound, "Not Found")
			return nil, false
		}
		h.ServerError(c, err)
		return nil, false
	}

	if h.scope.OwnedOnly && !services.CanModify(middleware.CurrentUser(c), integration) {
		c.String(http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return integration, true
}

func (h *IntegrationHandler) renderForm(c *gin.Context, status int, integration *models.ApiIntegration, form IntegrationForm, errs map[string]string) {
	action := h.scope.Base + "/new"
	title := "New integration"
	if integration != nil {
		action = h.scope.Base + "/" + strconv.FormatUint(uint64(integration.ID), 10) + "/edit"
		title = "Edit " + integration.Name
	}
	data := gin.H{
		"title":       title,
		"base":        h.scope.Base,
		"action":      action,
		"form":        form,
		"integration": integration,
		"methods":     HTTPMethods,
		"statuses":    models.Statuses,
		"authTypes":   AuthTypes,
	}
	if errs != nil {
		data["errors"] = errs
	}
	h.HTML(c, status, "integration_form.html", data)
}

func (h *IntegrationHandler) audit(c *gin.Context, action string, integration *models.ApiIntegration, details map[string]interface{}) {
	actor := middleware.CurrentUser(c)
	h.auditService.Record(auditEntry(c, actor.ID, action, "integration", strconv.FormatUint(uint64(integration.ID), 10), details))
}

func docLinks(base string, integrations []models.ApiIntegration) map[uint]string {
	links := make(map[uint]string, len(integrations))
	for _, i := range integrations {
		if link := services.DocURL(base, i.DocusaurusDocPath); link != "" {
			links[i.ID] = link
		}
	}
	return links
}
