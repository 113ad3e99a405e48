package seeds

import (
	"context"

	classSeed "classroom_backend/internals/seeds/classes"
	settingSeed "classroom_backend/internals/seeds/settings"

	gokitlog "github.com/go-kit/log"
	"gorm.io/gorm"
)

const classesSeedFile = "internals/seeds/classes/data_classes.json"

func RunAllSeeds(ctx context.Context, db *gorm.DB, logger gokitlog.Logger) error {
	//* Settings
	if err := settingSeed.SeedDefaultSettings(ctx, db, logger); err != nil {
		return err
	}

	//* Classes
	return classSeed.SeedClassesFromJSON(ctx, db, classesSeedFile, logger)
}
