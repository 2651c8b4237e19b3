package services

import (
	"path/filepath"
	"testing"

	"integration-hub/internal/config"
	"integration-hub/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// setupTestDB initializes a sqlite database in a temp dir and returns its config.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Mode = "test"
	cfg.Database.URL = "sqlite:///" + filepath.Join(t.TempDir(), "hub_test.db")
	cfg.Security.BcryptCost = bcrypt.MinCost
	cfg.Session.Secret = "test-secret-key-for-testing-only"

	require.NoError(t, models.InitDB(cfg))
	t.Cleanup(func() {
		_ = models.Close()
	})
	return cfg
}

func createTestUser(t *testing.T, auth *AuthService, email, role string) *models.User {
	t.Helper()
	user, err := auth.CreateUser(email, "Test "+role, "password123", role)
	require.NoError(t, err)
	return user
}

func newTestIntegrationService(fs afero.Fs) *IntegrationService {
	return NewIntegrationService(NewStubGenerator(fs, "stubs"), zap.NewNop())
}

func sampleIntegration(name string) *IntegrationData {
	return &IntegrationData{
		Name:         name,
		SystemName:   "billing",
		BaseURL:      "https://api.example.com",
		EndpointPath: "/v1/invoices",
		HTTPMethod:   "post",
		Status:       models.StatusEnabled,
		AuthType:     models.AuthAPIKey,
		APIKey:       "k-123",
	}
}

func zapNop() *zap.Logger {
	return zap.NewNop()
}
