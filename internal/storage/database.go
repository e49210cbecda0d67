package storage

import (
	"github.com/Chloelee05/ElevateTM/internal/game"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep the schema updated via AutoMigrate; the data directory is wiped
	// manually when a clean slate is needed.
	if err := db.AutoMigrate(
		&game.Contest{},
		&game.Contestant{},
		&game.RoundRecord{},
		&game.MaintenanceRecord{},
	); err != nil {
		return nil, err
	}

	// Contestants are looked up by their public UUID on every submission.
	if execErr := db.Exec("CREATE INDEX IF NOT EXISTS idx_contest_contestants_uuid ON contest_contestants(contestant_uuid);").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
