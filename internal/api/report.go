package api

import (
	"net/http"

	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/Chloelee05/ElevateTM/internal/logging"
	"github.com/Chloelee05/ElevateTM/internal/opponent"
	"github.com/gin-gonic/gin"
)

// reportContext is the structured summary handed to the analyst model after
// a contest ends.
type reportContext struct {
	Rounds     int            `json:"rounds"`
	Scores     map[string]int `json:"scores"`
	MoneyFinal map[string]int `json:"money_final"`
	Wins       map[string]int `json:"wins"`
	Bids       struct {
		HumanAvg     float64 `json:"human_avg"`
		MachineAvg   float64 `json:"machine_avg"`
		HumanMax     int     `json:"human_max"`
		MachineMax   int     `json:"machine_max"`
		HumanTotal   int     `json:"human_total"`
		MachineTotal int     `json:"machine_total"`
	} `json:"bids"`
	MaintenanceTotalPaid int                `json:"maintenance_total_paid"`
	Winner               string             `json:"winner"`
	EndReason            string             `json:"end_reason"`
	History              []game.RoundRecord `json:"history"`
}

// GetReport builds the post-contest summary and asks the analyst model for a
// capital profile. When the model is unreachable the structured context is
// returned alone so the client can render its own summary.
func (h *ContestHandler) GetReport(c *gin.Context) {
	id, ok := parseContestID(c)
	if !ok {
		return
	}
	g, err := h.repo.GetContestByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrContestNotFound})
		return
	}
	if g.Status != game.StatusFinished {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: "Report is available once the contest has finished"})
		return
	}

	rc := buildReportContext(g)
	report, err := opponent.GenerateReport(c.Request.Context(), rc)
	if err != nil {
		logging.Error("report generation failed", err, logging.Fields{constants.LogFieldContestID: g.ID})
		c.JSON(http.StatusOK, gin.H{"context": rc, "report": nil, constants.JSONKeyMessage: "Report generation unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"context": rc, "report": report})
}

func buildReportContext(g *game.Contest) reportContext {
	human := g.Human()
	machine := g.Machine()

	var rc reportContext
	rc.Rounds = len(g.Records)
	rc.Scores = map[string]int{"human": human.Score, "machine": machine.Score}
	rc.MoneyFinal = map[string]int{"human": human.Balance, "machine": machine.Balance}
	rc.Winner = g.Winner
	rc.EndReason = g.EndReason
	rc.History = g.Records

	humanWins, machineWins := 0, 0
	for _, r := range g.Records {
		switch r.Winner {
		case human.DisplayName:
			humanWins++
		case machine.DisplayName:
			machineWins++
		}
		rc.Bids.HumanTotal += r.HumanBid
		rc.Bids.MachineTotal += r.MachineBid
		if r.HumanBid > rc.Bids.HumanMax {
			rc.Bids.HumanMax = r.HumanBid
		}
		if r.MachineBid > rc.Bids.MachineMax {
			rc.Bids.MachineMax = r.MachineBid
		}
		rc.MaintenanceTotalPaid += r.Fee
	}
	rc.Wins = map[string]int{
		"human":   humanWins,
		"machine": machineWins,
		"ties":    rc.Rounds - humanWins - machineWins,
	}
	if rc.Rounds > 0 {
		rc.Bids.HumanAvg = float64(rc.Bids.HumanTotal) / float64(rc.Rounds)
		rc.Bids.MachineAvg = float64(rc.Bids.MachineTotal) / float64(rc.Rounds)
	}
	return rc
}
