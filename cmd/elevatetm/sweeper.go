package main

import (
	"context"
	"time"

	"github.com/Chloelee05/ElevateTM/internal/broadcast"
	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/Chloelee05/ElevateTM/internal/engine"
	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/Chloelee05/ElevateTM/internal/logging"
	"github.com/Chloelee05/ElevateTM/internal/metrics"
	"github.com/Chloelee05/ElevateTM/internal/service"
	"github.com/Chloelee05/ElevateTM/internal/storage"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// startDeadlineSweeper schedules a periodic scan for contests whose confirm
// deadline has passed and auto-confirms them (bidding zero for the inactive
// human when needed).
func startDeadlineSweeper(repo storage.Repository, rules game.Rules, catalog game.Catalog, provider engine.DecisionProvider, hub *broadcast.Hub) {
	workerID := uuid.NewString()
	c := cron.New()

	_, err := c.AddFunc("@every 5s", func() {
		contests, err := repo.FindTimedOutContests(time.Now())
		if err != nil {
			logging.Error("deadline sweeper failed to list contests", err, logging.Fields{constants.LogFieldWorkerID: workerID})
			return
		}
		// Process sequentially; SQLite tolerates one writer at a time.
		for i := range contests {
			gg := &contests[i]
			logging.Info("sweeping timed-out contest", logging.Fields{
				constants.LogFieldContestID: gg.ID,
				constants.LogFieldRound:     gg.RoundNumber,
				constants.LogFieldWorkerID:  workerID,
			})
			if err := service.HandleTimedOutContest(context.Background(), repo, gg, rules, catalog, provider); err != nil {
				logging.Error("failed to sweep contest", err, logging.Fields{constants.LogFieldContestID: gg.ID})
				continue
			}
			metrics.TimeoutSweeps.Inc()
			metrics.RoundsResolved.Inc()
			publishSweepResult(repo, hub, gg.ID)
		}
	})
	if err != nil {
		logging.Fatal("failed to schedule deadline sweeper", err, nil)
	}
	c.Start()
}

// publishSweepResult notifies WS observers after a sweep resolved a round on
// the human's behalf.
func publishSweepResult(repo storage.Repository, hub *broadcast.Hub, contestID uint) {
	g, err := repo.GetContestByID(contestID)
	if err != nil {
		return
	}
	hub.Publish(broadcast.Event{
		Type:      "contest_update",
		ContestID: g.ID,
		Payload: map[string]interface{}{
			"phase":   g.Phase,
			"round":   g.RoundNumber,
			"message": g.Message,
			"status":  g.Status,
		},
	})
}
