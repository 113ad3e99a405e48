package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	model "classroom_backend/internals/features/classroom/settings/model"
	"classroom_backend/internals/helpers/apperr"

	"github.com/pkg/errors"
)

// Store is the persistence the settings service needs. Get returns an
// apperr.ErrNotFound kind when the key has no row.
type Store interface {
	Get(ctx context.Context, key string) (*model.SettingModel, error)
	InsertIfAbsent(ctx context.Context, key, value string) error
	Upsert(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]model.SettingModel, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// AbsenceDeduction returns the grade points removed per unexcused absence.
// Not a pure read: a missing row is created with the 0.5 default first.
// The value is read from the store on every call.
func (s *Service) AbsenceDeduction(ctx context.Context) (float64, error) {
	raw, err := s.getOrCreate(ctx, model.KeyAbsenceDeduction, model.DefaultAbsenceDeduction)
	if err != nil {
		return 0, err
	}
	v, err := parseDeduction(raw)
	if err != nil {
		return 0, errors.WithMessagef(apperr.ErrStoreUnavailable, "stored %s %q is corrupt", model.KeyAbsenceDeduction, raw)
	}
	return v, nil
}

func (s *Service) SetAbsenceDeduction(ctx context.Context, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return apperr.InvalidInput("absence_deduction must be a non-negative number")
	}
	return s.store.Upsert(ctx, model.KeyAbsenceDeduction, strconv.FormatFloat(v, 'f', -1, 64))
}

// All returns every setting as key → value, with the deduction default applied.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	if _, err := s.getOrCreate(ctx, model.KeyAbsenceDeduction, model.DefaultAbsenceDeduction); err != nil {
		return nil, err
	}
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.SettingKey] = r.SettingValue
	}
	return out, nil
}

// Put upserts a single key. Known keys get their value checked.
func (s *Service) Put(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperr.InvalidInput("key is required")
	}
	value = strings.TrimSpace(value)
	if key == model.KeyAbsenceDeduction {
		if _, err := parseDeduction(value); err != nil {
			return apperr.InvalidInput("absence_deduction must be a non-negative number")
		}
	}
	return s.store.Upsert(ctx, key, value)
}

func (s *Service) getOrCreate(ctx context.Context, key, def string) (string, error) {
	row, err := s.store.Get(ctx, key)
	if err == nil {
		return row.SettingValue, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}
	if err := s.store.InsertIfAbsent(ctx, key, def); err != nil {
		return "", err
	}
	// re-read so a concurrent writer's value wins over our default
	row, err = s.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return row.SettingValue, nil
}

func parseDeduction(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, errors.Errorf("out of range: %v", v)
	}
	return v, nil
}
