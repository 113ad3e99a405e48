package model

import "time"

const (
	KeyAbsenceDeduction     = "absence_deduction"
	DefaultAbsenceDeduction = "0.5"
)

/* =========================
   Model: settings (key/value)
========================= */

type SettingModel struct {
	SettingKey       string    `gorm:"type:varchar(80);primaryKey;column:setting_key" json:"setting_key"`
	SettingValue     string    `gorm:"type:text;not null;column:setting_value" json:"setting_value"`
	SettingUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:setting_updated_at" json:"setting_updated_at"`
}

func (SettingModel) TableName() string { return "settings" }
