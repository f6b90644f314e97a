package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jjgarcianorway/anna/pkg/execution"
)

// writeError maps a domain error to an HTTP status and JSON body, logging
// anything that isn't a named error this package expects (mirrors tarsy's
// mapServiceError: named errors get a precise status, everything else is
// logged and returned as a generic 500).
func writeError(c *gin.Context, err error) {
	var denial *execution.PolicyDenialError
	if errors.As(err, &denial) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "matched_rules": denial.MatchedRules})
		return
	}
	if errors.Is(err, execution.ErrRiskyPlan) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	slog.Error("unexpected api error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
