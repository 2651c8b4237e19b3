package services

import (
	"testing"

	"integration-hub/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocURL(t *testing.T) {
	assert.Equal(t, "", DocURL("http://docs", ""))
	assert.Equal(t, "", DocURL("", "/integrations/x"))
	assert.Equal(t, "http://localhost:3000/docs/integrations/my-api", DocURL("http://localhost:3000/docs", "/integrations/my-api"))
	assert.Equal(t, "http://localhost:3000/docs/integrations/my-api", DocURL("http://localhost:3000/docs/", "integrations/my-api"))
}

func TestSettingUpsertAndSiteName(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewSettingService(cfg)

	assert.Equal(t, cfg.Site.Name, svc.SiteName())

	got, err := svc.Get(models.SettingSiteName)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = svc.Upsert(models.SettingSiteName, "Ops Hub")
	require.NoError(t, err)
	saved, err := svc.Upsert(models.SettingSiteName, "Ops Hub 2")
	require.NoError(t, err)
	assert.Equal(t, "Ops Hub 2", saved.Value)
	assert.Equal(t, "Ops Hub 2", svc.SiteName())

	var count int64
	models.DB.Model(&models.SiteSetting{}).Count(&count)
	assert.Equal(t, int64(1), count)

	_, err = svc.Upsert(" ", "x")
	assert.ErrorIs(t, err, ErrInvalidSetting)
}

func TestCountByStatus(t *testing.T) {
	cfg := setupTestDB(t)
	auth := NewAuthService(cfg)
	alice := createTestUser(t, auth, "alice@example.com", models.RoleDeveloper)
	bob := createTestUser(t, auth, "bob@example.com", models.RoleDeveloper)
	svc := newTestIntegrationService(afero.NewMemMapFs())

	for _, st := range []string{models.StatusEnabled, models.StatusEnabled, models.StatusError} {
		data := sampleIntegration("a-" + st)
		data.Status = st
		_, err := svc.CreateIntegration(alice, data)
		require.NoError(t, err)
	}
	data := sampleIntegration("b")
	data.Status = models.StatusDisabled
	_, err := svc.CreateIntegration(bob, data)
	require.NoError(t, err)

	dash := NewDashboardService()
	all, err := dash.CountByStatus(0)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{"enabled": 2, "disabled": 1, "error": 1}, all)
	assert.Equal(t, int64(4), all.Total())

	mine, err := dash.CountByStatus(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{"enabled": 0, "disabled": 1, "error": 0}, mine)
}

func TestAuditRecordAndRecent(t *testing.T) {
	cfg := setupTestDB(t)
	user := createTestUser(t, NewAuthService(cfg), "admin@example.com", models.RoleAdmin)
	audit := NewAuditService(zapNop())

	audit.Record(AuditEntry{UserID: user.ID, Action: "login"})
	audit.Record(AuditEntry{UserID: user.ID, Action: "setting", Resource: "setting", ResourceID: "SITE_NAME", Details: map[string]interface{}{"value": "x"}})

	logs, err := audit.Recent(10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "setting", logs[0].Action)
	assert.Equal(t, "x", logs[0].Details["value"])
	assert.Equal(t, "admin@example.com", logs[0].User.Email)
}
