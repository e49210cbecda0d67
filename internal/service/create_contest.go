package service

import (
	"errors"
	"strings"
	"time"

	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/google/uuid"
)

// ContestRepo is the minimal repository interface required by the contest
// services. Using a small interface simplifies testing.
type ContestRepo interface {
	CreateContest(g *game.Contest) error
	GetContestByID(id uint) (*game.Contest, error)
	UpdateContest(g *game.Contest) error
}

var (
	ErrContestNotFound    = errors.New("contest not found")
	ErrContestNotRunning  = errors.New("contest is not in progress")
	ErrEmptyName          = errors.New("contestant name must not be empty")
	ErrInvalidPersonality = errors.New("unknown opponent personality")
)

// Personalities the opponent provider understands.
var knownPersonalities = map[string]bool{
	"":           true, // defaults to balanced
	"balanced":   true,
	"aggressive": true,
	"cautious":   true,
	"ruthless":   true,
}

type CreateContestSpec struct {
	Name        string
	HumanName   string
	Personality string
	// Seed drives the deterministic per-round randomness; 0 picks a
	// time-based seed.
	Seed int64
}

// CreateContest builds a new two-contestant session (one human, one machine)
// and persists it in the waiting phase of round 1.
func CreateContest(repo ContestRepo, spec CreateContestSpec, rules game.Rules) (*game.Contest, error) {
	humanName := strings.TrimSpace(spec.HumanName)
	if humanName == "" {
		return nil, ErrEmptyName
	}
	personality := strings.ToLower(strings.TrimSpace(spec.Personality))
	if !knownPersonalities[personality] {
		return nil, ErrInvalidPersonality
	}
	if personality == "" {
		personality = "balanced"
	}

	seed := spec.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	name := strings.TrimSpace(spec.Name)
	if name == "" {
		name = humanName + "'s contest"
	}

	g := &game.Contest{
		Name:        name,
		Status:      game.StatusInProgress,
		Phase:       game.PhaseWaiting,
		RoundNumber: 1,
		Seed:        seed,
		Personality: personality,
		Message:     "Round 1: waiting to start",
		Contestants: []game.Contestant{
			{
				ContestantUUID: uuid.NewString(),
				DisplayName:    humanName,
				Kind:           game.KindHuman,
				Balance:        rules.StartingBalance,
			},
			{
				ContestantUUID: uuid.NewString(),
				DisplayName:    "The House",
				Kind:           game.KindMachine,
				Balance:        rules.StartingBalance,
			},
		},
	}

	if err := repo.CreateContest(g); err != nil {
		return nil, err
	}
	return g, nil
}
