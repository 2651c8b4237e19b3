package handlers

import (
	"net/http"
	"net/url"

	"integration-hub/internal/api/middleware"
	"integration-hub/internal/models"
	"integration-hub/internal/services"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	*Renderer
	settingService *services.SettingService
	auditService   *services.AuditService
}

func NewSettingHandler(r *Renderer, settingService *services.SettingService, auditService *services.AuditService) *SettingHandler {
	return &SettingHandler{
		Renderer:       r,
		settingService: settingService,
		auditService:   auditService,
	}
}

// ShowSetting renders one key, SITE_NAME unless ?key= says otherwise
func (h *SettingHandler) ShowSetting(c *gin.Context) {
	key := c.DefaultQuery("key", models.SettingSiteName)
	setting, err := h.settingService.Get(key)
	if err != nil {
		h.ServerError(c, err)
		return
	}

	form := SettingForm{Key: key}
	if setting != nil {
		form.Value = setting.Value
	}
	h.HTML(c, http.StatusOK, "admin_settings.html", gin.H{
		"title":   "Settings",
		"setting": setting,
		"form":    form,
	})
}

// SaveSetting upserts one key/value pair
func (h *SettingHandler) SaveSetting(c *gin.Context) {
	var form SettingForm
	if err := c.ShouldBind(&form); err != nil {
		errs, _ := fieldErrors(err)
		h.HTML(c, http.StatusBadRequest, "admin_settings.html", gin.H{
			"title":  "Settings",
			"form":   form,
			"errors": errs,
		})
		return
	}

	setting, err := h.settingService.Upsert(form.Key, form.Value)
	if err != nil {
		h.ServerError(c, err)
		return
	}

	actor := middleware.CurrentUser(c)
	h.auditService.Record(auditEntry(c, actor.ID, "setting", "setting", setting.Key, map[string]interface{}{
		"value": setting.Value,
	}))
	h.RedirectWithFlash(c, "/admin/settings?key="+url.QueryEscape(setting.Key), "success", "Setting saved.")
}
