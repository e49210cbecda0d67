package api

import (
	"net/http"

	"github.com/Chloelee05/ElevateTM/internal/version"
	"github.com/gin-gonic/gin"
)

// GetVersion returns the build version string.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": version.Version})
}
