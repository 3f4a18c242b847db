package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"tasktrack/internal/cache"
	"tasktrack/internal/database"
)

// Health returns 200 if the process is alive. Used by load balancers.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if the database and Redis are reachable.
func Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if cache.Client(ctx) == nil {
		c.String(http.StatusServiceUnavailable, "redis unavailable")
		return
	}
	db := database.DB(ctx)
	if db == nil {
		c.String(http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if err := db.PingContext(ctx); err != nil {
		c.String(http.StatusServiceUnavailable, "database ping failed")
		return
	}
	c.String(http.StatusOK, "OK")
}
