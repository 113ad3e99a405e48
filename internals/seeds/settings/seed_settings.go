package settings

import (
	"context"

	settingModel "classroom_backend/internals/features/classroom/settings/model"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedDefaultSettings inserts the default absence deduction unless an
// operator already set one.
func SeedDefaultSettings(ctx context.Context, db *gorm.DB, logger gokitlog.Logger) error {
	row := settingModel.SettingModel{
		SettingKey:   settingModel.KeyAbsenceDeduction,
		SettingValue: settingModel.DefaultAbsenceDeduction,
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "setting_key"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return errors.Wrap(res.Error, "seed settings")
	}
	if res.RowsAffected == 0 {
		_ = level.Info(logger).Log("msg", "absence deduction already set, skipped")
		return nil
	}
	_ = level.Info(logger).Log("msg", "absence deduction seeded", "value", row.SettingValue)
	return nil
}
