package domain

import (
	"fmt"
	"time"
)

// AgentType is the closed set of analytical agent roles. Unknown strings are
// rejected at the parse boundary instead of falling through a map lookup.
type AgentType string

const (
	AgentIngestion   AgentType = "INGESTION"
	AgentRiskAnalyst AgentType = "RISK_ANALYST"
	AgentPortfolio   AgentType = "PORTFOLIO"
	AgentGovernance  AgentType = "GOVERNANCE"
)

// AgentTypes lists every known agent role in catalog order.
var AgentTypes = []AgentType{AgentIngestion, AgentRiskAnalyst, AgentPortfolio, AgentGovernance}

// ParseAgentType validates an incoming agent-type string.
func ParseAgentType(s string) (AgentType, error) {
	switch t := AgentType(s); t {
	case AgentIngestion, AgentRiskAnalyst, AgentPortfolio, AgentGovernance:
		return t, nil
	}
	return "", fmt.Errorf("unknown agent type %q", s)
}

// Agent execution log statuses.
const (
	AgentStatusSuccess = "SUCCESS"
	AgentStatusFailure = "FAILURE"
	AgentStatusIdle    = "IDLE"
)

// AgentTask is one entry in the static per-agent task catalog.
type AgentTask struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// IndexedTask annotates a catalog task with its index for dispatch.
type IndexedTask struct {
	AgentTask
	Index      int  `json:"index"`
	CanExecute bool `json:"canExecute"`
}

// AgentLog is one appended execution record; the audit trail behind status,
// overview and contribution aggregation.
type AgentLog struct {
	ID         string    `json:"id"`
	AgentType  AgentType `json:"agentType"`
	TaskName   string    `json:"taskName"`
	Status     string    `json:"status"`
	DurationMs int64     `json:"duration"`
	Timestamp  time.Time `json:"timestamp"`
}

// AgentStatCount is one (agentType, status) bucket from log aggregation.
type AgentStatCount struct {
	AgentType AgentType
	Status    string
	Count     int
}

// AgentContribution aggregates one agent's logged work.
type AgentContribution struct {
	TotalExecutions       int     `json:"totalExecutions"`
	SuccessRate           float64 `json:"successRate"`
	InsightsGenerated     int     `json:"insightsGenerated"`
	RiskIdentifications   int     `json:"riskIdentifications"`
	ComplianceIssuesFound int     `json:"complianceIssuesFound"`
}

// InsightContext is the aggregate snapshot embedded into insight prompts.
type InsightContext struct {
	TotalEntities    int      `json:"totalEntities"`
	AverageRiskScore float64  `json:"averageRiskScore"`
	Sectors          []string `json:"sectors"`
	Timestamp        string   `json:"timestamp"`
}
