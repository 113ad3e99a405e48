package classes

import (
	"context"
	"os"

	classModel "classroom_backend/internals/features/classroom/classes/model"
	helper "classroom_backend/internals/helpers"

	"github.com/bytedance/sonic"
	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ClassSeed struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Grade       *string `json:"grade"`
	MaxStudents int     `json:"max_students"`
}

// SeedClassesFromJSON inserts the demo classes whose slug is not taken yet.
func SeedClassesFromJSON(ctx context.Context, db *gorm.DB, filePath string, logger gokitlog.Logger) error {
	_ = level.Info(logger).Log("msg", "reading seed file", "path", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrap(err, "read class seeds")
	}
	var seeds []ClassSeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		return errors.Wrap(err, "decode class seeds")
	}

	var existing []string
	if err := db.WithContext(ctx).Model(&classModel.ClassModel{}).
		Pluck("class_slug", &existing).Error; err != nil {
		return errors.Wrap(err, "load class slugs")
	}
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s] = true
	}

	var rows []classModel.ClassModel
	for _, s := range seeds {
		slug := helper.Slugify(s.Name, 160)
		if taken[slug] {
			_ = level.Debug(logger).Log("msg", "class exists, skipped", "slug", slug)
			continue
		}
		taken[slug] = true

		capacity := s.MaxStudents
		if capacity <= 0 {
			capacity = classModel.DefaultMaxStudents
		}
		rows = append(rows, classModel.ClassModel{
			ClassName:        s.Name,
			ClassSlug:        slug,
			ClassDescription: s.Description,
			ClassGrade:       s.Grade,
			ClassMaxStudents: capacity,
		})
	}

	if len(rows) == 0 {
		_ = level.Info(logger).Log("msg", "no new classes to seed")
		return nil
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return errors.Wrap(err, "insert class seeds")
	}
	_ = level.Info(logger).Log("msg", "classes seeded", "count", len(rows))
	return nil
}
