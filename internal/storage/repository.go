package storage

import (
	"time"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

type Repository interface {
	CreateContest(g *game.Contest) error
	GetContestByID(id uint) (*game.Contest, error)
	// GetRecentContests lists the most recently created contests, newest
	// first, for the lobby listing.
	GetRecentContests(limit int) ([]game.Contest, error)
	UpdateContest(g *game.Contest) error
	// FindTimedOutContests returns contests that are in progress, awaiting a
	// confirm and whose confirm deadline is at or before the provided time.
	// The caller decides how to resolve them (the sweeper auto-confirms).
	FindTimedOutContests(now time.Time) ([]game.Contest, error)
}
