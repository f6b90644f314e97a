package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// askRequest is the POST /v1/ask body.
type askRequest struct {
	Query string `json:"query" binding:"required"`
}

func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := s.agent.Ask(c.Request.Context(), req.Query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}
