package api

import (
	"net/http"

	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/gin-gonic/gin"
)

// WatchContest upgrades the connection to WebSocket and subscribes it to the
// contest's event stream (contest updates, round results, finish events).
func (h *ContestHandler) WatchContest(c *gin.Context) {
	id, ok := parseContestID(c)
	if !ok {
		return
	}
	if _, err := h.repo.GetContestByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrContestNotFound})
		return
	}
	h.hub.HandleWS(c.Writer, c.Request, id)
}
