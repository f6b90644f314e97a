package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jjgarcianorway/anna/pkg/policy"
)

// evaluateRequest is the POST /v1/plans/evaluate body: the shape of an
// intended operation, ahead of building any CommandPlan for it.
type evaluateRequest struct {
	Domain         string   `json:"domain" binding:"required"`
	RiskLevel      string   `json:"risk_level" binding:"required"`
	TargetPaths    []string `json:"target_paths"`
	TargetServices []string `json:"target_services"`
	TargetPackages []string `json:"target_packages"`
	Tags           []string `json:"tags"`
}

func (s *Server) evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	domain := policy.Domain(req.Domain)
	if !domain.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown domain: " + req.Domain})
		return
	}

	risk, err := parseRiskLevel(req.RiskLevel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision := s.agent.Evaluate(policy.PlannedAction{
		Domain:         domain,
		RiskLevel:      risk,
		TargetPaths:    req.TargetPaths,
		TargetServices: req.TargetServices,
		TargetPackages: req.TargetPackages,
		Tags:           req.Tags,
	})

	c.JSON(http.StatusOK, decision)
}

func parseRiskLevel(name string) (policy.RiskLevel, error) {
	for _, r := range []policy.RiskLevel{policy.RiskSafe, policy.RiskModerate, policy.RiskHigh} {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown risk level: %s", name)
}
