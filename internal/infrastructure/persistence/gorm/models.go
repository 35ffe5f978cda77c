// Package gorm provides GORM-based persistence for settings
package gorm

import "time"

// SettingModel is one stored key-value pair
type SettingModel struct {
	Key       string `gorm:"column:setting_key;type:varchar(128);primaryKey"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default pluralised name
func (SettingModel) TableName() string {
	return "settings"
}

// Models lists every model the schema migration creates
func Models() []interface{} {
	return []interface{}{&SettingModel{}}
}
