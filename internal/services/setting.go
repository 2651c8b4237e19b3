package services

import (
	"errors"
	"strings"

	"integration-hub/internal/config"
	"integration-hub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidSetting = errors.New("setting key and value are required")

type SettingService struct {
	cfg *config.Config
}

func NewSettingService(cfg *config.Config) *SettingService {
	return &SettingService{cfg: cfg}
}

// Get returns the setting stored under key, or nil when it does not exist.
func (s *SettingService) Get(key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	if err := models.DB.Where(&models.SiteSetting{Key: key}).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert creates or replaces one key/value row.
func (s *SettingService) Upsert(key, value string) (*models.SiteSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" || value == "" {
		return nil, ErrInvalidSetting
	}

	setting := &models.SiteSetting{Key: key, Value: value}
	err := models.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(setting).Error
	if err != nil {
		return nil, err
	}
	return s.Get(key)
}

// SiteName returns the SITE_NAME setting, falling back to configuration.
func (s *SettingService) SiteName() string {
	setting, err := s.Get(models.SettingSiteName)
	if err != nil || setting == nil || setting.Value == "" {
		return s.cfg.Site.Name
	}
	return setting.Value
}
