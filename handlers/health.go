package handlers

import (
	"net/http"

	"mentora/database"
	"mentora/utils"

	"github.com/gin-gonic/gin"
)

// Health reports liveness of the process and its backing stores.
func Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := "ok"

	if err := database.MongoClient.Ping(ctx, nil); err != nil {
		status = "degraded"
	}
	if utils.CacheClient != nil {
		if err := utils.CacheClient.Ping(ctx).Err(); err != nil {
			status = "degraded"
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status})
}
