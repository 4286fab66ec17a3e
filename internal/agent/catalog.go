package agent

import (
	"fmt"

	"github.com/ghana-siga/siga-igov/internal/domain"
)

// metadata carries the display name and role framing for one agent type.
type metadata struct {
	Name string
	Role string
}

// agentMetadata is exhaustive over domain.AgentTypes; missing entries fail
// the catalog test, not a runtime lookup.
var agentMetadata = map[domain.AgentType]metadata{
	domain.AgentIngestion: {
		Name: "Data Ingestion Agent",
		Role: "a data ingestion specialist for Ghana's SIGA platform",
	},
	domain.AgentRiskAnalyst: {
		Name: "Risk Analysis Agent",
		Role: "a risk analyst for state-owned enterprises",
	},
	domain.AgentPortfolio: {
		Name: "Portfolio Management Agent",
		Role: "a portfolio manager for Ghana's state enterprises",
	},
	domain.AgentGovernance: {
		Name: "Governance Agent",
		Role: "a governance expert",
	},
}

// agentTasks is the static executable-task catalog per agent type.
var agentTasks = map[domain.AgentType][]domain.AgentTask{
	domain.AgentIngestion: {
		{Name: "Validate Entity Records", Description: "Check the entity registry for missing or inconsistent fields"},
		{Name: "Sync Financial Submissions", Description: "Reconcile submitted KPI returns against the reporting calendar"},
		{Name: "Flag Data Gaps", Description: "List entities with no KPI or risk history in the trailing year"},
	},
	domain.AgentRiskAnalyst: {
		{Name: "Score Portfolio Risk", Description: "Recompute composite risk scores across the portfolio"},
		{Name: "Identify High-Risk Entities", Description: "Rank entities by latest overall risk score and flag outliers"},
		{Name: "Quarterly Risk Trend Review", Description: "Compare quarter-over-quarter movement in component risks"},
	},
	domain.AgentPortfolio: {
		{Name: "Sector Exposure Analysis", Description: "Break portfolio value down by sector and flag concentration"},
		{Name: "Dividend Performance Review", Description: "Compare declared against paid dividends per entity"},
		{Name: "Guarantee Exposure Summary", Description: "Total outstanding sovereign guarantees by entity and sector"},
	},
	domain.AgentGovernance: {
		{Name: "Board Composition Audit", Description: "Review board seats and appointment dates for vacancies"},
		{Name: "Compliance Gap Scan", Description: "Find overdue compliance requirements across entities"},
		{Name: "Governance Score Update", Description: "Refresh governance component scores from the latest filings"},
	},
}

// DisplayName returns the human name for an agent type.
func DisplayName(t domain.AgentType) string {
	return agentMetadata[t].Name
}

// Catalog returns the indexed task list for one agent type.
func Catalog(t domain.AgentType) []domain.IndexedTask {
	tasks := agentTasks[t]
	out := make([]domain.IndexedTask, 0, len(tasks))
	for i, task := range tasks {
		out = append(out, domain.IndexedTask{AgentTask: task, Index: i, CanExecute: true})
	}
	return out
}

// TaskAt resolves one catalog entry, range-checked.
func TaskAt(t domain.AgentType, index int) (domain.AgentTask, error) {
	tasks := agentTasks[t]
	if index < 0 || index >= len(tasks) {
		return domain.AgentTask{}, fmt.Errorf("task index %d out of range for %s", index, t)
	}
	return tasks[index], nil
}

const systemPrompt = "You are an expert AI assistant for the SIGA-iGOV platform, " +
	"providing intelligent insights for Ghana's state enterprise oversight."

// insightPrompt builds the role-specific prompt embedding the live context.
func insightPrompt(t domain.AgentType, contextJSON string) string {
	var ask string
	switch t {
	case domain.AgentIngestion:
		ask = "analyze the current entity data and provide insights on data quality, completeness, and recommendations for improvement"
	case domain.AgentRiskAnalyst:
		ask = "analyze the current risk landscape and provide strategic recommendations"
	case domain.AgentPortfolio:
		ask = "analyze the portfolio performance and provide optimization recommendations"
	case domain.AgentGovernance:
		ask = "analyze the current governance structure and provide improvement recommendations"
	}
	return fmt.Sprintf("As %s, %s. Context: %s", agentMetadata[t].Role, ask, contextJSON)
}

// fallbackInsight is the canned per-type insight used when the completion
// call fails.
func fallbackInsight(t domain.AgentType, ctx domain.InsightContext) string {
	switch t {
	case domain.AgentIngestion:
		return fmt.Sprintf("Data ingestion is performing well with %d entities processed. Consider implementing automated validation checks to improve data quality.", ctx.TotalEntities)
	case domain.AgentRiskAnalyst:
		return fmt.Sprintf("Current risk assessment shows an average score of %.1f. Focus on high-risk entities and implement mitigation strategies.", ctx.AverageRiskScore)
	case domain.AgentPortfolio:
		return fmt.Sprintf("Portfolio spans %d sectors. Diversification is good, but consider sector-specific optimization strategies.", len(ctx.Sectors))
	case domain.AgentGovernance:
		return "Governance framework is in place for all entities. Regular compliance monitoring and board effectiveness assessments are recommended."
	}
	return "Agent insights not available."
}

// fallbackTaskOutput is the canned execution result used when the completion
// call fails or the model is unavailable.
func fallbackTaskOutput(t domain.AgentType, task domain.AgentTask, ctx domain.InsightContext) string {
	return fmt.Sprintf("%s completed %q across %d entities (average risk %.1f, %d sectors).",
		agentMetadata[t].Name, task.Name, ctx.TotalEntities, ctx.AverageRiskScore, len(ctx.Sectors))
}
