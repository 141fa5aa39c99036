package model

import (
	"time"

	"gorm.io/datatypes"
)

// AppSettingModel is a key/value store for runtime configuration such as
// dropdown options and intake defaults.
type AppSettingModel struct {
	SettingKey   string         `json:"setting_key" gorm:"column:setting_key;type:varchar(60);primaryKey"`
	SettingValue datatypes.JSON `json:"setting_value" gorm:"column:setting_value;type:jsonb;not null;default:'{}'"`

	SettingCreatedAt time.Time  `json:"setting_created_at" gorm:"column:setting_created_at;not null;autoCreateTime"`
	SettingUpdatedAt *time.Time `json:"setting_updated_at,omitempty" gorm:"column:setting_updated_at;autoUpdateTime"`
}

func (AppSettingModel) TableName() string {
	return "app_settings"
}
