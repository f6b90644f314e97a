package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jjgarcianorway/anna/pkg/planner"
	"github.com/jjgarcianorway/anna/pkg/policy"
)

type executeCommandRequest struct {
	Program       string   `json:"program" binding:"required"`
	Args          []string `json:"args"`
	RequiresTools []string `json:"requires_tools"`
	RiskLevel     string   `json:"risk_level" binding:"required"`
	WritesFiles   []string `json:"writes_files"`
	RequiresRoot  bool     `json:"requires_root"`
}

// executeRequest is the POST /v1/plans/execute body: an already-approved
// plan, built client-side from a prior /v1/plans/evaluate call. The server
// rebuilds and re-evaluates it rather than trusting the caller's decision,
// since plan.Decision and plan.SafetyLevel are what the executor checks
// before touching the host.
type executeRequest struct {
	Label          string                  `json:"label" binding:"required"`
	Commands       []executeCommandRequest `json:"commands" binding:"required"`
	Fallbacks      []executeCommandRequest `json:"fallbacks"`
	Domain         string                  `json:"domain" binding:"required"`
	TargetPaths    []string                `json:"target_paths"`
	TargetServices []string                `json:"target_services"`
	TargetPackages []string                `json:"target_packages"`
	Tags           []string                `json:"tags"`
}

func (s *Server) execute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	domain := policy.Domain(req.Domain)
	if !domain.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown domain: " + req.Domain})
		return
	}

	commands, err := toPlannedCommands(req.Commands)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fallbacks, err := toPlannedCommands(req.Fallbacks)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision := s.agent.Evaluate(policy.PlannedAction{
		Domain:         domain,
		RiskLevel:      highestRisk(commands),
		TargetPaths:    req.TargetPaths,
		TargetServices: req.TargetServices,
		TargetPackages: req.TargetPackages,
		Tags:           req.Tags,
	})

	plan, err := planner.Build(planner.Spec{
		Label:     req.Label,
		Commands:  commands,
		Fallbacks: fallbacks,
		Decision:  decision,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.agent.Execute(c.Request.Context(), req.Label, plan)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func toPlannedCommands(reqs []executeCommandRequest) ([]planner.PlannedCommand, error) {
	commands := make([]planner.PlannedCommand, 0, len(reqs))
	for _, r := range reqs {
		risk, err := parseRiskLevel(r.RiskLevel)
		if err != nil {
			return nil, err
		}
		commands = append(commands, planner.PlannedCommand{
			Program:       r.Program,
			Args:          r.Args,
			RequiresTools: r.RequiresTools,
			RiskLevel:     risk,
			WritesFiles:   r.WritesFiles,
			RequiresRoot:  r.RequiresRoot,
		})
	}
	return commands, nil
}

func highestRisk(commands []planner.PlannedCommand) policy.RiskLevel {
	highest := policy.RiskSafe
	for _, cmd := range commands {
		if cmd.RiskLevel > highest {
			highest = cmd.RiskLevel
		}
	}
	return highest
}
