package utils

import "github.com/gin-gonic/gin"

// GetBaseURL returns the scheme and host the request arrived on plus the API prefix.
func GetBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + "/api"
}
