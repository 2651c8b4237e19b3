package services

import (
	"integration-hub/internal/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AuditEntry describes one user action to record.
type AuditEntry struct {
	UserID     uint
	Action     string
	Resource   string
	ResourceID string
	Details    map[string]interface{}
	IPAddress  string
	UserAgent  string
}

type AuditService struct {
	logger *zap.Logger
}

func NewAuditService(logger *zap.Logger) *AuditService {
	return &AuditService{logger: logger}
}

// Record stores an audit entry. Failures are logged, never returned, so an
// audit problem cannot undo the action being audited.
func (s *AuditService) Record(e AuditEntry) {
	entry := &models.AuditLog{
		UserID:     e.UserID,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		Details:    datatypes.JSONMap(e.Details),
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
	}
	if err := models.DB.Omit("User").Create(entry).Error; err != nil {
		s.logger.Warn("failed to write audit log",
			zap.Uint("user_id", e.UserID),
			zap.String("action", e.Action),
			zap.Error(err),
		)
	}
}

// Recent returns the newest audit entries first.
func (s *AuditService) Recent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []models.AuditLog
	if err := models.DB.Preload("User").Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	for i := range logs {
		logs[i].User.PasswordHash = ""
	}
	return logs, nil
}
