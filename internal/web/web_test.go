package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"login.html", "register.html", "dashboard.html",
		"integrations.html", "integration_form.html", "operator_status.html",
		"admin_users.html", "admin_settings.html", "admin_audit.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestLoginRendersAnonymousLayout(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "login.html", map[string]interface{}{
		"siteName": "Hub <Test>",
		"title":    "Log in",
		"form":     struct{ Email string }{"a@b.c"},
		"errors":   map[string]string{"password": "This field is required."},
		"next":     "/developer/",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Hub &lt;Test&gt;")
	assert.Contains(t, out, `href="/register"`)
	assert.Contains(t, out, "This field is required.")
	assert.Contains(t, out, `action="/login?next=%2fdeveloper%2f"`)
}

func TestFuncs(t *testing.T) {
	title := funcs["title"].(func(string) string)
	assert.Equal(t, "Api key", title("api_key"))
	assert.Equal(t, "", title(""))

	datetime := funcs["datetime"].(func(time.Time) string)
	assert.Equal(t, "", datetime(time.Time{}))
	assert.Equal(t, "2026-01-02 03:04 UTC", datetime(time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)))
}
