// Package synth generates fallback KPI, risk, compliance and procurement
// records for entities that have no history in the store. Generation is pure
// and deterministic: the random source is derived from the entity identifier,
// so the same entity always gets the same series. Synthesized rows are never
// persisted.
package synth

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/ghana-siga/siga-igov/internal/domain"
)

// Series lengths filled in for an entity with no recorded history.
const (
	KpiMonths     = 12
	RiskQuarters  = 4
	ComplianceReq = 5
)

// KPI magnitude ranges, in GHS for the monetary fields.
const (
	revenueMin     = 500_000_000
	revenueSpan    = 1_000_000_000
	profitMin      = -20_000_000
	profitSpan     = 100_000_000
	assetsMin      = 1_000_000_000
	assetsSpan     = 5_000_000_000
	liabilitiesMin  = 500_000_000
	liabilitiesSpan = 2_000_000_000
	equityMin      = 1_000_000_000
	equitySpan     = 3_000_000_000
	employeesMin   = 500
	employeesSpan  = 5000
)

// Risk score ranges (0-100 scale).
const (
	overallRiskMin  = 40
	overallRiskSpan = 40
	partRiskMin     = 25
	partRiskSpan    = 50
)

// Procurement value ranges.
const (
	procMin        = 1_000_000
	procSpan       = 49_000_000
	procComplianceMin  = 55
	procComplianceSpan = 45
)

// source builds the deterministic generator for one entity and series kind.
// The kind salt keeps the KPI, risk and procurement streams independent.
func source(entityID, kind string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(entityID))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// KpiSeries returns one row per trailing month ending at now, period
// descending, matching the store's own ordering.
func KpiSeries(entityID string, now time.Time, months int) []domain.KpiData {
	r := source(entityID, "kpi")
	rows := make([]domain.KpiData, 0, months)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, -i, 0)
		rows = append(rows, domain.KpiData{
			ID:                   fmt.Sprintf("kpi-%s-%d", entityID, i),
			EntityID:             entityID,
			Period:               m.Format("2006-01"),
			Year:                 m.Year(),
			Month:                int(m.Month()),
			Revenue:              float64(revenueMin + r.Int63n(revenueSpan)),
			Profit:               float64(profitMin + r.Int63n(profitSpan)),
			Assets:               float64(assetsMin + r.Int63n(assetsSpan)),
			Liabilities:          float64(liabilitiesMin + r.Int63n(liabilitiesSpan)),
			Equity:               float64(equityMin + r.Int63n(equitySpan)),
			Roa:                  r.Float64()*0.1 - 0.02,
			Roe:                  r.Float64()*0.15 - 0.03,
			DebtToEquity:         r.Float64() * 2,
			EmployeeCount:        employeesMin + r.Intn(employeesSpan),
			ServiceDeliveryIndex: r.Float64()*40 + 60,
			CustomerSatisfaction: r.Float64()*30 + 70,
			ReportingCompliance:  r.Float64()*20 + 80,
			GovernanceScore:      r.Float64()*25 + 75,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}
	return rows
}

var riskFactorNames = []string{
	"Revenue Volatility",
	"Debt Levels",
	"Board Independence",
	"Audit Findings",
}

// RiskSeries returns one row per trailing calendar quarter ending at now,
// period descending.
func RiskSeries(entityID string, now time.Time, quarters int) []domain.RiskScore {
	r := source(entityID, "risk")
	rows := make([]domain.RiskScore, 0, quarters)
	year, q := now.Year(), (int(now.Month())-1)/3+1
	for i := 0; i < quarters; i++ {
		factors := make([]domain.RiskFactor, len(riskFactorNames))
		for j, name := range riskFactorNames {
			factors[j] = domain.RiskFactor{Name: name, Score: r.Float64() * 100}
		}
		rows = append(rows, domain.RiskScore{
			ID:              fmt.Sprintf("risk-%s-%d", entityID, i),
			EntityID:        entityID,
			Period:          fmt.Sprintf("%d-Q%d", year, q),
			OverallScore:    overallRiskMin + r.Intn(overallRiskSpan),
			FinancialRisk:   partRiskMin + r.Intn(partRiskSpan),
			OperationalRisk: partRiskMin + r.Intn(partRiskSpan),
			GovernanceRisk:  partRiskMin + r.Intn(partRiskSpan),
			ComplianceRisk:  partRiskMin + r.Intn(partRiskSpan),
			RiskFactors:     domain.RiskFactors{Factors: factors},
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		q--
		if q == 0 {
			year, q = year-1, 4
		}
	}
	return rows
}

type checklistItem struct {
	requirement string
	category    string
	status      string
}

// The fixed five-requirement checklist used when an entity has no compliance
// history. Due dates step 30 days apart starting 60 days in the past.
var checklist = []checklistItem{
	{"Quarterly Financial Report", "FINANCIAL_REPORTING", domain.ComplianceCompliant},
	{"Board Meeting Minutes", "GOVERNANCE", domain.CompliancePending},
	{"Annual Audit Report", "AUDIT", domain.ComplianceOverdue},
	{"Procurement Compliance", "PROCUREMENT", domain.ComplianceCompliant},
	{"Operational Metrics", "OPERATIONAL", domain.ComplianceCompliant},
}

// ComplianceChecklist returns the fixed checklist instantiated for one entity.
func ComplianceChecklist(entityID string, now time.Time) []domain.ComplianceLog {
	rows := make([]domain.ComplianceLog, 0, len(checklist))
	for i, item := range checklist {
		due := now.AddDate(0, 0, i*30-60)
		var completed *time.Time
		notes := "On track"
		if item.status == domain.ComplianceCompliant {
			t := now
			completed = &t
		}
		if item.status == domain.ComplianceOverdue {
			notes = "Requires immediate attention"
		}
		rows = append(rows, domain.ComplianceLog{
			ID:            fmt.Sprintf("compliance-%s-%d", entityID, i),
			EntityID:      entityID,
			Requirement:   item.requirement,
			Category:      item.category,
			Status:        item.status,
			DueDate:       due,
			CompletedDate: completed,
			AssignedTo:    "Compliance Officer",
			Notes:         notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return rows
}

var (
	procCategories = []string{"Goods", "Works", "Services", "Consultancy"}
	procMethods    = []string{
		"National Competitive Tendering",
		"International Competitive Tendering",
		"Restricted Tendering",
		"Request for Quotation",
		"Single Source",
	}
	procStatuses = []string{"AWARDED", "UNDER_EVALUATION", "TENDER_PUBLISHED", "CONTRACT_SIGNED", "COMPLETED"}
)

// riskLevelFor maps a compliance score onto a procurement risk band.
func riskLevelFor(score float64) string {
	switch {
	case score >= 85:
		return domain.RiskLow
	case score >= 70:
		return domain.RiskMedium
	case score >= 60:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

// ProcurementRecords returns 2-5 procurement rows for one entity.
func ProcurementRecords(entityID, entityName string, now time.Time) []domain.Procurement {
	r := source(entityID, "procurement")
	n := 2 + r.Intn(4)
	rows := make([]domain.Procurement, 0, n)
	for i := 0; i < n; i++ {
		category := procCategories[r.Intn(len(procCategories))]
		estimated := float64(procMin + r.Int63n(procSpan))
		actual := estimated * (0.9 + r.Float64()*0.2)
		savings := estimated - actual
		if savings < 0 {
			savings = 0
		}
		compliance := float64(procComplianceMin) + r.Float64()*procComplianceSpan
		published := now.AddDate(0, -r.Intn(18), -r.Intn(28))
		smes := r.Intn(13)
		awardedSMEs := 0
		if smes > 0 {
			awardedSMEs = r.Intn(smes + 1)
		}
		rows = append(rows, domain.Procurement{
			ID:                     fmt.Sprintf("proc-%s-%d", entityID, i),
			ProcurementID:          fmt.Sprintf("PR-%s-%03d", entityID, i+1),
			Title:                  fmt.Sprintf("%s procurement for %s", category, entityName),
			EntityID:               entityID,
			EntityName:             entityName,
			Category:               category,
			ProcurementMethod:      procMethods[r.Intn(len(procMethods))],
			EstimatedValue:         estimated,
			ActualValue:            actual,
			Currency:               "GHS",
			TenderPublicationDate:  published,
			ContractAwardDate:      published.AddDate(0, 2, 0),
			Status:                 procStatuses[r.Intn(len(procStatuses))],
			ComplianceScore:        compliance,
			RiskLevel:              riskLevelFor(compliance),
			ProcurementOfficer:     "Procurement Officer",
			NegotiationSavings:     savings,
			LocalContentPercentage: 20 + r.Float64()*60,
			SMEsParticipated:       smes,
			SMEsAwarded:            awardedSMEs,
		})
	}
	return rows
}
