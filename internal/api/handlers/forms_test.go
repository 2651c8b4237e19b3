package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"integration-hub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindForm(t *testing.T, form url.Values, dst interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseFormFieldNames()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.ShouldBind(dst)
}

func TestFieldErrorsUseFormNames(t *testing.T) {
	var form RegisterForm
	err := bindForm(t, url.Values{"full_name": {"A"}, "email": {"nope"}}, &form)
	require.Error(t, err)

	errs, ok := fieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Field must be at least 2 characters long.", errs["full_name"])
	assert.Equal(t, "Invalid email address.", errs["email"])
	assert.Equal(t, "This field is required.", errs["password"])
}

func TestIntegrationFormChoices(t *testing.T) {
	valid := url.Values{
		"name":          {"Orders"},
		"system_name":   {"Shop"},
		"base_url":      {"https://shop.example.com"},
		"endpoint_path": {"/orders"},
		"http_method":   {"PATCH"},
		"auth_type":     {"basic"},
	}
	var form IntegrationForm
	require.NoError(t, bindForm(t, valid, &form))
	assert.Empty(t, form.Status)
	assert.Equal(t, "PATCH", form.data().HTTPMethod)

	valid.Set("auth_type", "oauth")
	valid.Set("status", "paused")
	err := bindForm(t, valid, &IntegrationForm{})
	errs, ok := fieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Not a valid choice.", errs["auth_type"])
	assert.Equal(t, "Not a valid choice.", errs["status"])
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	_, ok := fieldErrors(assert.AnError)
	assert.False(t, ok)
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/developer/integrations", safeNext("/developer/integrations"))
	assert.Equal(t, "", safeNext("https://evil.example.com"))
	assert.Equal(t, "", safeNext("//evil.example.com"))
	assert.Equal(t, "", safeNext(`/\evil.example.com`))
	assert.Equal(t, "", safeNext(""))
}

func TestHomePath(t *testing.T) {
	tests := map[string]string{
		models.RoleAdmin:     "/admin/users",
		models.RoleAPIAdmin:  "/api-admin/integrations",
		models.RoleDeveloper: "/developer/",
		models.RoleOperator:  "/operator/status",
	}
	for role, path := range tests {
		assert.Equal(t, path, HomePath(&models.User{Role: &models.Role{Name: role}}), role)
	}
	assert.Equal(t, "/developer/", HomePath(&models.User{}))
}

func TestDocLinks(t *testing.T) {
	links := docLinks("http://docs.local/docs", []models.ApiIntegration{
		{ID: 1, DocusaurusDocPath: "/crm/contacts"},
		{ID: 2},
	})
	assert.Equal(t, map[uint]string{1: "http://docs.local/docs/crm/contacts"}, links)
}
