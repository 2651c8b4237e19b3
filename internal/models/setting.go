package models

// SiteSetting is an admin-managed key/value pair.
type SiteSetting struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Key   string `json:"key" gorm:"type:varchar(100);uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:varchar(255);not null"`
}

// SettingSiteName overrides the configured site name when present.
const SettingSiteName = "SITE_NAME"
