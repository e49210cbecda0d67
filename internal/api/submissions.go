package api

import (
	"net/http"
	"time"

	"github.com/Chloelee05/ElevateTM/internal/broadcast"
	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/Chloelee05/ElevateTM/internal/logging"
	"github.com/Chloelee05/ElevateTM/internal/metrics"
	"github.com/Chloelee05/ElevateTM/internal/service"
	"github.com/gin-gonic/gin"
)

type BidRequest struct {
	ContestantUUID string `json:"contestant_uuid"`
	Amount         int    `json:"amount"`
}

type ActionRequest struct {
	ContestantUUID string `json:"contestant_uuid"`
	ActionType     string `json:"action_type"`
}

type ConfirmRequest struct {
	ContestantUUID string `json:"contestant_uuid"`
}

// SubmitBid stores the human's sealed bid for the current round.
func (h *ContestHandler) SubmitBid(c *gin.Context) {
	id, ok := parseContestID(c)
	if !ok {
		return
	}
	var req BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g, err := service.SubmitBid(h.repo, id, req.ContestantUUID, req.Amount)
	if err != nil {
		h.writeSubmissionError(c, err)
		return
	}

	h.publishContestUpdate(g)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: g.Message, "phase": g.Phase})
}

// SubmitAction stores the human's optional catalog action.
func (h *ContestHandler) SubmitAction(c *gin.Context) {
	id, ok := parseContestID(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g, err := service.SubmitAction(h.repo, id, req.ContestantUUID, game.ActionType(req.ActionType), h.catalog)
	if err != nil {
		h.writeSubmissionError(c, err)
		return
	}

	h.publishContestUpdate(g)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: g.Message, "phase": g.Phase})
}

// ConfirmRound closes the human's turn and resolves the round synchronously.
// The response carries the full round result; the same payload is broadcast
// to WebSocket observers.
func (h *ContestHandler) ConfirmRound(c *gin.Context) {
	id, ok := parseContestID(c)
	if !ok {
		return
	}
	// The body is optional; contest-level confirm does not need an identity
	// since only the human side can confirm.
	var req ConfirmRequest
	_ = c.ShouldBindJSON(&req)

	start := time.Now()
	g, res, err := service.ConfirmRound(c.Request.Context(), h.repo, id, h.rules, h.catalog, h.provider)
	if err != nil {
		h.writeSubmissionError(c, err)
		return
	}
	metrics.RoundsResolved.Inc()
	metrics.RoundResolutionDuration.Observe(time.Since(start).Seconds())

	h.publishRoundResult(g, res)
	if res != nil && res.ContestOver {
		outcome := "decided"
		if g.Winner == "" {
			outcome = "tie"
		}
		metrics.ContestsFinished.WithLabelValues(outcome).Inc()
		logging.Info("contest finished", logging.Fields{
			constants.LogFieldContestID: g.ID,
			constants.LogFieldWinner:    g.Winner,
			"end_reason":                g.EndReason,
		})
	}

	c.JSON(http.StatusOK, gin.H{"result": res, "contest_status": g.Status, constants.JSONKeyMessage: g.Message})
}

func (h *ContestHandler) writeSubmissionError(c *gin.Context, err error) {
	switch err {
	case service.ErrContestNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrContestNotFound})
	case service.ErrContestNotRunning:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrContestNotInProgress})
	case service.ErrBidsLocked, service.ErrActionsLocked, service.ErrNothingPending:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongPhase})
	case service.ErrAlreadySubmitted:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadySubmitted})
	case service.ErrInvalidAmount:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAmount})
	case service.ErrUnknownActionType:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownActionType})
	case service.ErrInsufficientFunds:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrInsufficientFunds})
	case service.ErrContestantNotFound:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrContestantNotInContest})
	case service.ErrOpponentManaged:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOpponentManaged})
	case service.ErrBidRequired:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBidRequiredFirst})
	default:
		logging.Error("submission failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateContest})
	}
}

func (h *ContestHandler) publishContestUpdate(g *game.Contest) {
	if h.hub == nil || g == nil {
		return
	}
	h.hub.Publish(broadcast.Event{
		Type:      "contest_update",
		ContestID: g.ID,
		Payload: gin.H{
			"phase":   g.Phase,
			"round":   g.RoundNumber,
			"message": g.Message,
		},
	})
}

func (h *ContestHandler) publishRoundResult(g *game.Contest, res *game.RoundResult) {
	if h.hub == nil || g == nil || res == nil {
		return
	}
	h.hub.Publish(broadcast.Event{Type: "round_result", ContestID: g.ID, Payload: res})
	if res.ContestOver {
		h.hub.Publish(broadcast.Event{
			Type:      "contest_finished",
			ContestID: g.ID,
			Payload: gin.H{
				"winner":     g.Winner,
				"end_reason": g.EndReason,
			},
		})
	}
}
