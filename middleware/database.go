package middleware

import (
	"context"

	"resourceshub/metrics"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// RequireDatabase rejects the request with a 500 when MongoDB is unreachable.
func RequireDatabase(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			metrics.TrackError("database", "unreachable")
			utils.AbortInternalError(c, "Database connection failed: "+err.Error())
			return
		}
		c.Next()
	}
}
