package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"integration-hub/internal/api/middleware"
	"integration-hub/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*Renderer
	userService  *services.UserService
	auditService *services.AuditService
}

func NewUserHandler(r *Renderer, userService *services.UserService, auditService *services.AuditService) *UserHandler {
	return &UserHandler{
		Renderer:     r,
		userService:  userService,
		auditService: auditService,
	}
}

// GetUsers lists all users with a role selector each
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		h.ServerError(c, err)
		return
	}
	roles, err := h.userService.GetRoles()
	if err != nil {
		h.ServerError(c, err)
		return
	}

	h.HTML(c, http.StatusOK, "admin_users.html", gin.H{
		"title": "Users",
		"users": users,
		"roles": roles,
	})
}

// SetRole assigns a new role to a user
func (h *UserHandler) SetRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	roleName := c.PostForm("role_name")
	user, err := h.userService.SetRole(actor.ID, id, roleName)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.String(http.StatusNotFound, "Not Found")
		return
	case errors.Is(err, services.ErrInvalidRole):
		h.RedirectWithFlash(c, "/admin/users", "danger", "Invalid role selection.")
		return
	case errors.Is(err, services.ErrSelfDemotion):
		h.RedirectWithFlash(c, "/admin/users", "danger", "You cannot remove your own admin role.")
		return
	case err != nil:
		h.ServerError(c, err)
		return
	}

	h.auditService.Record(auditEntry(c, actor.ID, "set_role", "user", strconv.FormatUint(uint64(user.ID), 10), map[string]interface{}{
		"role": roleName,
	}))
	h.RedirectWithFlash(c, "/admin/users", "success", "User role updated.")
}

// SetActive activates or deactivates a user account
func (h *UserHandler) SetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	active, err := strconv.ParseBool(c.PostForm("active"))
	if err != nil {
		h.RedirectWithFlash(c, "/admin/users", "danger", "Invalid active flag.")
		return
	}

	actor := middleware.CurrentUser(c)
	user, err := h.userService.SetActive(actor.ID, id, active)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.String(http.StatusNotFound, "Not Found")
		return
	case errors.Is(err, services.ErrSelfDeactivation):
		h.RedirectWithFlash(c, "/admin/users", "danger", "You cannot deactivate your own account.")
		return
	case err != nil:
		h.ServerError(c, err)
		return
	}

	h.auditService.Record(auditEntry(c, actor.ID, "set_active", "user", strconv.FormatUint(uint64(user.ID), 10), map[string]interface{}{
		"active": active,
	}))

	message := "User deactivated."
	if active {
		message = "User activated."
	}
	h.RedirectWithFlash(c, "/admin/users", "success", message)
}
