package services

import (
	"errors"
	"strings"

	"integration-hub/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrIntegrationNotFound = errors.New("integration not found")
	ErrForbidden           = errors.New("permission denied")
)

// IntegrationData carries the editable fields of an integration.
type IntegrationData struct {
	Name              string
	SystemName        string
	BaseURL           string
	EndpointPath      string
	HTTPMethod        string
	Status            string
	AuthType          string
	APIKey            string
	Notes             string
	DocusaurusDocPath string
}

type IntegrationService struct {
	stubs  *StubGenerator
	logger *zap.Logger
}

func NewIntegrationService(stubs *StubGenerator, logger *zap.Logger) *IntegrationService {
	return &IntegrationService{
		stubs:  stubs,
		logger: logger,
	}
}

// CanModify reports whether actor may edit, delete, toggle or test the
// integration: owners always can, api_admin can act on any row.
func CanModify(actor *models.User, integration *models.ApiIntegration) bool {
	if actor == nil || integration == nil {
		return false
	}
	return integration.OwnedBy(actor.ID) || actor.HasRole(models.RoleAPIAdmin)
}

// GetIntegrations returns all integrations ordered by name
func (s *IntegrationService) GetIntegrations() ([]models.ApiIntegration, error) {
	var integrations []models.ApiIntegration
	if err := models.DB.Preload("Owner").Order("name").Find(&integrations).Error; err != nil {
		return nil, err
	}
	for i := range integrations {
		integrations[i].Owner.PasswordHash = ""
	}
	return integrations, nil
}

// GetIntegrationsByOwner returns the integrations owned by ownerID ordered by name
func (s *IntegrationService) GetIntegrationsByOwner(ownerID uint) ([]models.ApiIntegration, error) {
	var integrations []models.ApiIntegration
	if err := models.DB.Where("owner_id = ?", ownerID).Order("name").Find(&integrations).Error; err != nil {
		return nil, err
	}
	return integrations, nil
}

// GetIntegration returns a specific integration by ID
func (s *IntegrationService) GetIntegration(id uint) (*models.ApiIntegration, error) {
	var integration models.ApiIntegration
	if err := models.DB.Preload("Owner").First(&integration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, err
	}
	integration.Owner.PasswordHash = ""
	return &integration, nil
}

// CreateIntegration stores a new integration owned by owner and scaffolds
// its stub file. A stub failure is logged and leaves the row in place.
func (s *IntegrationService) CreateIntegration(owner *models.User, data *IntegrationData) (*models.ApiIntegration, error) {
	integration := &models.ApiIntegration{OwnerID: owner.ID}
	applyIntegrationData(integration, data)
	integration.Status = data.Status
	if integration.Status == "" {
		integration.Status = models.StatusEnabled
	}

	if err := models.DB.Omit(clause.Associations).Create(integration).Error; err != nil {
		return nil, err
	}

	path, created, err := s.stubs.Generate(integration)
	switch {
	case err != nil:
		s.logger.Error("failed to generate integration stub",
			zap.Uint("integration_id", integration.ID),
			zap.Error(err),
		)
	case created:
		s.logger.Info("generated integration stub",
			zap.Uint("integration_id", integration.ID),
			zap.String("path", path),
		)
	}

	return integration, nil
}

// UpdateIntegration updates the descriptive fields. Status only changes
// through ToggleIntegration and TestIntegration.
func (s *IntegrationService) UpdateIntegration(id uint, data *IntegrationData) (*models.ApiIntegration, error) {
	var integration models.ApiIntegration
	if err := models.DB.First(&integration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, err
	}

	applyIntegrationData(&integration, data)

	if err := models.DB.Omit(clause.Associations).Save(&integration).Error; err != nil {
		return nil, err
	}
	return &integration, nil
}

// DeleteIntegration removes an integration row. Its stub file stays on disk.
func (s *IntegrationService) DeleteIntegration(id uint) error {
	res := models.DB.Delete(&models.ApiIntegration{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrIntegrationNotFound
	}
	return nil
}

// ToggleIntegration flips enabled and disabled; an errored integration
// becomes enabled.
func (s *IntegrationService) ToggleIntegration(id uint) (*models.ApiIntegration, error) {
	var integration models.ApiIntegration
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&integration, id).Error; err != nil {
			return err
		}
		integration.Toggle()
		return tx.Model(&integration).Update("status", integration.Status).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, err
	}
	return &integration, nil
}

// TestIntegration simulates a health check: an errored integration is set
// back to enabled, other states are left alone. No request is sent.
func (s *IntegrationService) TestIntegration(id uint) (*models.ApiIntegration, bool, error) {
	var integration models.ApiIntegration
	var changed bool
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&integration, id).Error; err != nil {
			return err
		}
		changed = integration.Retest()
		if !changed {
			return nil
		}
		return tx.Model(&integration).Update("status", integration.Status).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrIntegrationNotFound
		}
		return nil, false, err
	}
	return &integration, changed, nil
}

// StubPath returns where the stub of an integration lives.
func (s *IntegrationService) StubPath(id uint) string {
	return s.stubs.Path(id)
}

// HasStub reports whether the stub of an integration exists.
func (s *IntegrationService) HasStub(id uint) bool {
	return s.stubs.Exists(id)
}

func applyIntegrationData(integration *models.ApiIntegration, data *IntegrationData) {
	integration.Name = strings.TrimSpace(data.Name)
	integration.SystemName = strings.TrimSpace(data.SystemName)
	integration.BaseURL = strings.TrimSpace(data.BaseURL)
	integration.EndpointPath = strings.TrimSpace(data.EndpointPath)
	integration.HTTPMethod = strings.ToUpper(strings.TrimSpace(data.HTTPMethod))
	integration.AuthType = data.AuthType
	integration.APIKey = data.APIKey
	integration.Notes = data.Notes
	integration.DocusaurusDocPath = strings.TrimSpace(data.DocusaurusDocPath)
	if integration.HTTPMethod == "" {
		integration.HTTPMethod = "GET"
	}
	if integration.AuthType == "" {
		integration.AuthType = models.AuthAPIKey
	}
}
