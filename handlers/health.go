package handlers

import (
	"net/http"

	"lingkod/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler returns the latest mongo/redis health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
