package service

import (
	"context"

	model "classroom_backend/internals/features/classroom/settings/model"
	"classroom_backend/internals/helpers/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, key string) (*model.SettingModel, error) {
	var m model.SettingModel
	if err := s.db.WithContext(ctx).
		Where("setting_key = ?", key).
		Take(&m).Error; err != nil {
		return nil, apperr.Store(err, "get setting "+key)
	}
	return &m, nil
}

// InsertIfAbsent relies on the primary key, concurrent callers do not collide.
func (s *gormStore) InsertIfAbsent(ctx context.Context, key, value string) error {
	m := model.SettingModel{SettingKey: key, SettingValue: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m).Error
	return apperr.Store(err, "create setting "+key)
}

func (s *gormStore) Upsert(ctx context.Context, key, value string) error {
	m := model.SettingModel{SettingKey: key, SettingValue: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_updated_at"}),
		}).
		Create(&m).Error
	return apperr.Store(err, "upsert setting "+key)
}

func (s *gormStore) List(ctx context.Context) ([]model.SettingModel, error) {
	var rows []model.SettingModel
	if err := s.db.WithContext(ctx).
		Order("setting_key ASC").
		Find(&rows).Error; err != nil {
		return nil, apperr.Store(err, "list settings")
	}
	return rows, nil
}
