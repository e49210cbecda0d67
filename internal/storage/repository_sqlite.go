package storage

import (
	"time"

	"github.com/Chloelee05/ElevateTM/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateContest(g *game.Contest) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetContestByID(id uint) (*game.Contest, error) {
	var g game.Contest
	err := r.db.
		Preload("Contestants").
		Preload("Records").
		Preload("MaintenanceRecords").
		First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) GetRecentContests(limit int) ([]game.Contest, error) {
	if limit <= 0 {
		limit = 10
	}
	var contests []game.Contest
	if err := r.db.Preload("Contestants").
		Order("created_at desc").
		Limit(limit).
		Find(&contests).Error; err != nil {
		return nil, err
	}
	return contests, nil
}

func (r *sqliteRepository) UpdateContest(g *game.Contest) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(g).Error
}

func (r *sqliteRepository) FindTimedOutContests(now time.Time) ([]game.Contest, error) {
	var contests []game.Contest
	err := r.db.
		Preload("Contestants").
		Preload("Records").
		Preload("MaintenanceRecords").
		Where("status = ?", game.StatusInProgress).
		Where("confirm_deadline IS NOT NULL AND confirm_deadline > ? AND confirm_deadline <= ?", time.Time{}, now).
		Find(&contests).Error
	if err != nil {
		return nil, err
	}
	return contests, nil
}
