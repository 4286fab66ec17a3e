package domain

import "time"

// Procurement risk levels.
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// Procurement is one procurement record for an entity, as rendered by the
// procurement dashboard view.
type Procurement struct {
	ID                     string    `json:"id"`
	ProcurementID          string    `json:"procurementId"`
	Title                  string    `json:"title"`
	EntityID               string    `json:"entityId"`
	EntityName             string    `json:"entityName"`
	Category               string    `json:"category"`
	ProcurementMethod      string    `json:"procurementMethod"`
	EstimatedValue         float64   `json:"estimatedValue"`
	ActualValue            float64   `json:"actualValue"`
	Currency               string    `json:"currency"`
	TenderPublicationDate  time.Time `json:"tenderPublicationDate"`
	ContractAwardDate      time.Time `json:"contractAwardDate"`
	Status                 string    `json:"status"`
	ComplianceScore        float64   `json:"complianceScore"`
	RiskLevel              string    `json:"riskLevel"`
	ProcurementOfficer     string    `json:"procurementOfficer"`
	NegotiationSavings     float64   `json:"negotiationSavings"`
	LocalContentPercentage float64   `json:"localContentPercentage"`
	SMEsParticipated       int       `json:"smesParticipated"`
	SMEsAwarded            int       `json:"smesAwarded"`
}

// ProcurementFilter is the client-local filter state serialized into query
// parameters on each refetch.
type ProcurementFilter struct {
	Category         string
	Status           string
	RiskLevel        string
	EntityID         string
	MinAmount        float64
	MaxAmount        float64
	ShowOnlyHighRisk bool
}

// BreakdownBucket is one category/method aggregation row.
type BreakdownBucket struct {
	Count      int     `json:"count"`
	Value      float64 `json:"value"`
	Compliance float64 `json:"compliance"`
}

// QuarterlyTrend is one quarter's procurement volume.
type QuarterlyTrend struct {
	Quarter string  `json:"quarter"`
	Count   int     `json:"count"`
	Value   float64 `json:"value"`
}

// ProcurementOverview is the headline totals block of the analytics payload.
type ProcurementOverview struct {
	TotalProcurements       int     `json:"totalProcurements"`
	TotalValue              float64 `json:"totalValue"`
	AverageComplianceScore  float64 `json:"averageComplianceScore"`
	AwardedContracts        int     `json:"awardedContracts"`
	UnderEvaluation         int     `json:"underEvaluation"`
	TotalNegotiationSavings float64 `json:"totalNegotiationSavings"`
	HighRiskCount           int     `json:"highRiskCount"`
	MediumRiskCount         int     `json:"mediumRiskCount"`
	LowRiskCount            int     `json:"lowRiskCount"`
	CriticalRiskCount       int     `json:"criticalRiskCount"`
	AverageLocalContent     float64 `json:"averageLocalContent"`
	TotalSMEsParticipated   int     `json:"totalSMEsParticipated"`
	TotalSMEsAwarded        int     `json:"totalSMEsAwarded"`
}

// ProcurementAnalytics is the GET /procurement-dashboard payload.
type ProcurementAnalytics struct {
	Overview          ProcurementOverview        `json:"overview"`
	Procurements      []Procurement              `json:"procurements"`
	CategoryBreakdown map[string]BreakdownBucket `json:"categoryBreakdown"`
	MethodBreakdown   map[string]BreakdownBucket `json:"methodBreakdown"`
	RiskDistribution  map[string]int             `json:"riskDistribution"`
	QuarterlyTrends   []QuarterlyTrend           `json:"quarterlyTrends"`
	Source            Source                     `json:"source"`
}
