package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultRecentChangesLimit = 20

func (s *Server) recentChanges(c *gin.Context) {
	limit := defaultRecentChangesLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	units, err := s.agent.RecentChanges(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changes": units})
}
