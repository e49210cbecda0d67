package api

import (
	"net/http"
	"sort"

	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/gin-gonic/gin"
)

// GetContest returns the full contest state including both contestants, the
// round history and maintenance records.
func (h *ContestHandler) GetContest(c *gin.Context) {
	id, ok := parseContestID(c)
	if !ok {
		return
	}
	g, err := h.repo.GetContestByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrContestNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchContest})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListContests returns the most recent contests for the lobby view.
func (h *ContestHandler) ListContests(c *gin.Context) {
	contests, err := h.repo.GetRecentContests(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchContest})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(contests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchContest})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListActions returns the configured action catalog sorted by key.
func (h *ContestHandler) ListActions(c *gin.Context) {
	specs := make([]game.ActionSpec, 0, len(h.catalog))
	for _, spec := range h.catalog {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Key < specs[j].Key })
	c.JSON(http.StatusOK, gin.H{"actions": specs})
}
