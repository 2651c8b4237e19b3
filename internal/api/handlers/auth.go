package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"integration-hub/internal/api/middleware"
	"integration-hub/internal/config"
	"integration-hub/internal/models"
	"integration-hub/internal/services"

	"github.com/gin-gonic/gin"
)

const invalidLoginMessage = "Invalid credentials or inactive account."

type AuthHandler struct {
	*Renderer
	authService  *services.AuthService
	auditService *services.AuditService
	cfg          *config.Config
}

func NewAuthHandler(r *Renderer, authService *services.AuthService, auditService *services.AuditService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Renderer:     r,
		authService:  authService,
		auditService: auditService,
		cfg:          cfg,
	}
}

// Index sends visitors to their role home or the login page.
func (h *AuthHandler) Index(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		c.Redirect(http.StatusFound, HomePath(user))
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		c.Redirect(http.StatusFound, HomePath(user))
		return
	}
	h.HTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Log in",
		"form":  LoginForm{},
		"next":  safeNext(c.Query("next")),
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	next := safeNext(c.Query("next"))

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		errs, _ := fieldErrors(err)
		h.HTML(c, http.StatusBadRequest, "login.html", gin.H{
			"title":  "Log in",
			"form":   form,
			"next":   next,
			"errors": errs,
		})
		return
	}

	user, err := h.authService.Authenticate(form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.ServerError(c, err)
			return
		}
		h.HTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title": "Log in",
			"form":  LoginForm{Email: form.Email},
			"next":  next,
			"flash": &Flash{Category: "danger", Message: invalidLoginMessage},
		})
		return
	}

	token, expiresAt, err := h.authService.StartSession(user)
	if err != nil {
		h.ServerError(c, err)
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, token, maxAge, "/", "", h.cfg.Session.Secure, true)

	h.auditService.Record(auditEntry(c, user.ID, "login", "user", strconv.FormatUint(uint64(user.ID), 10), nil))

	if next == "" {
		next = HomePath(user)
	}
	c.Redirect(http.StatusSeeOther, next)
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if session := middleware.CurrentSession(c); session != nil {
		if err := h.authService.DeleteSession(session.Token); err != nil {
			h.ServerError(c, err)
			return
		}
		h.auditService.Record(auditEntry(c, session.UserID, "logout", "user", strconv.FormatUint(uint64(session.UserID), 10), nil))
	}

	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.Secure, true)
	h.RedirectWithFlash(c, "/login", "info", "You have been logged out.")
}

// ShowRegister renders the registration form
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		c.Redirect(http.StatusFound, HomePath(user))
		return
	}
	h.HTML(c, http.StatusOK, "register.html", gin.H{
		"title": "Register",
		"form":  RegisterForm{},
	})
}

// Register creates a developer account
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		errs, _ := fieldErrors(err)
		form.Password = ""
		h.HTML(c, http.StatusBadRequest, "register.html", gin.H{
			"title":  "Register",
			"form":   form,
			"errors": errs,
		})
		return
	}

	user, err := h.authService.Register(form.Email, form.FullName, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			form.Password = ""
			h.HTML(c, http.StatusConflict, "register.html", gin.H{
				"title": "Register",
				"form":  form,
				"flash": &Flash{Category: "warning", Message: "Email already registered."},
			})
			return
		}
		h.ServerError(c, err)
		return
	}

	h.auditService.Record(auditEntry(c, user.ID, "register", "user", strconv.FormatUint(uint64(user.ID), 10), map[string]interface{}{
		"role": models.RoleDeveloper,
	}))
	h.RedirectWithFlash(c, "/login", "success", "Registration successful. Please log in.")
}
