package api

import (
	"net/http"

	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/Chloelee05/ElevateTM/internal/logging"
	"github.com/Chloelee05/ElevateTM/internal/metrics"
	"github.com/Chloelee05/ElevateTM/internal/service"
	"github.com/gin-gonic/gin"
)

type CreateContestRequest struct {
	Name           string `json:"name"`
	ContestantName string `json:"contestant_name"`
	Personality    string `json:"personality"`
	// Seed is optional; it makes the contest replayable for debugging.
	Seed int64 `json:"seed"`
}

// CreateContest creates a new session against the machine contestant.
func (h *ContestHandler) CreateContest(c *gin.Context) {
	var req CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if len(req.Name) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrContestNameExceeds})
		return
	}

	g, err := service.CreateContest(h.repo, service.CreateContestSpec{
		Name:        req.Name,
		HumanName:   req.ContestantName,
		Personality: req.Personality,
		Seed:        req.Seed,
	}, h.rules)
	if err != nil {
		switch err {
		case service.ErrEmptyName, service.ErrInvalidPersonality:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("failed to create contest", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateContest})
		}
		return
	}

	metrics.ContestsCreated.Inc()
	logging.Info("contest created", logging.Fields{constants.LogFieldContestID: g.ID})

	out, err := MarshalIntoSnakeTimestamps(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateContest})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// StartRound opens the bidding phase for the current round.
func (h *ContestHandler) StartRound(c *gin.Context) {
	id, ok := parseContestID(c)
	if !ok {
		return
	}

	g, err := service.StartRound(h.repo, id, h.rules)
	if err != nil {
		switch err {
		case service.ErrContestNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrContestNotFound})
		case service.ErrContestNotRunning:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrContestNotInProgress})
		case service.ErrRoundAlreadyStarted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateContest})
		}
		return
	}

	h.publishContestUpdate(g)
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: g.Message,
		"round":                  g.RoundNumber,
		"phase":                  g.Phase,
		"confirm_deadline":       g.ConfirmDeadline,
	})
}
