package models

import "time"

const (
	StatusEnabled  = "enabled"
	StatusDisabled = "disabled"
	StatusError    = "error"
)

const (
	AuthNone   = "none"
	AuthAPIKey = "api_key"
	AuthBasic  = "basic"
)

// Statuses lists every integration status in display order.
var Statuses = []string{StatusEnabled, StatusDisabled, StatusError}

// ApiIntegration is a tracked external API endpoint owned by one user.
type ApiIntegration struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	Name              string `json:"name" gorm:"type:varchar(120);not null;index"`
	SystemName        string `json:"system_name" gorm:"type:varchar(120);not null"`
	BaseURL           string `json:"base_url" gorm:"type:varchar(255);not null"`
	EndpointPath      string `json:"endpoint_path" gorm:"type:varchar(255);not null"`
	HTTPMethod        string `json:"http_method" gorm:"type:varchar(10);default:'GET'"`
	Status            string `json:"status" gorm:"type:varchar(20);default:'enabled';index"`
	AuthType          string `json:"auth_type" gorm:"type:varchar(50);default:'api_key'"`
	APIKey            string `json:"-" gorm:"column:api_key;type:varchar(255)"`
	Notes             string `json:"notes" gorm:"type:text"`
	DocusaurusDocPath string `json:"docusaurus_doc_path" gorm:"type:varchar(255)"`

	OwnerID uint `json:"owner_id" gorm:"not null;index"`
	Owner   User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ApiIntegration) TableName() string {
	return "api_integrations"
}

// Toggle flips enabled to disabled; any other status becomes enabled.
func (i *ApiIntegration) Toggle() {
	if i.Status == StatusEnabled {
		i.Status = StatusDisabled
		return
	}
	i.Status = StatusEnabled
}

// Retest simulates a health check. Only errored integrations change, and
// it reports whether they did.
func (i *ApiIntegration) Retest() bool {
	if i.Status != StatusError {
		return false
	}
	i.Status = StatusEnabled
	return true
}

// OwnedBy reports whether userID owns the integration.
func (i *ApiIntegration) OwnedBy(userID uint) bool {
	return i.OwnerID == userID
}
