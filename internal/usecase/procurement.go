package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/repo"
	"github.com/ghana-siga/siga-igov/internal/seed"
	"github.com/ghana-siga/siga-igov/internal/synth"
)

// ProcurementUseCase builds the procurement analytics view. Procurement
// records are synthesized per entity (there is no procurement table yet);
// the entity registry itself comes from the store, degrading to the seed
// registry when unreachable.
type ProcurementUseCase struct {
	repo repo.EntityRepo
	log  *log.Helper
}

func NewProcurementUseCase(repo repo.EntityRepo, logger log.Logger) *ProcurementUseCase {
	return &ProcurementUseCase{repo: repo, log: log.NewHelper(logger)}
}

// Analytics assembles filtered procurement records and their aggregates.
func (uc *ProcurementUseCase) Analytics(ctx context.Context, filter domain.ProcurementFilter) *domain.ProcurementAnalytics {
	now := time.Now()
	source := domain.SourceStore

	type nameID struct{ id, name string }
	var entities []nameID
	stored, err := uc.repo.ListAll(ctx)
	if err != nil {
		uc.log.Warnf("procurement: entity list failed, using seed registry: %v", err)
		source = domain.SourceFallback
		for _, r := range seed.Entities() {
			entities = append(entities, nameID{r.EntityID, r.Name})
		}
	} else {
		for _, e := range stored {
			entities = append(entities, nameID{e.EntityID, e.Name})
		}
	}

	var records []domain.Procurement
	for _, e := range entities {
		for _, p := range synth.ProcurementRecords(e.id, e.name, now) {
			if matches(p, filter) {
				records = append(records, p)
			}
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].TenderPublicationDate.After(records[j].TenderPublicationDate)
	})

	a := aggregate(records)
	a.Procurements = records
	a.Source = source
	return a
}

func matches(p domain.Procurement, f domain.ProcurementFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.RiskLevel != "" && p.RiskLevel != f.RiskLevel {
		return false
	}
	if f.EntityID != "" && p.EntityID != f.EntityID {
		return false
	}
	if f.MinAmount > 0 && p.EstimatedValue < f.MinAmount {
		return false
	}
	if f.MaxAmount > 0 && p.EstimatedValue > f.MaxAmount {
		return false
	}
	if f.ShowOnlyHighRisk && p.RiskLevel != domain.RiskHigh && p.RiskLevel != domain.RiskCritical {
		return false
	}
	return true
}

func aggregate(records []domain.Procurement) *domain.ProcurementAnalytics {
	a := &domain.ProcurementAnalytics{
		CategoryBreakdown: map[string]domain.BreakdownBucket{},
		MethodBreakdown:   map[string]domain.BreakdownBucket{},
		RiskDistribution:  map[string]int{},
	}
	quarters := map[string]*domain.QuarterlyTrend{}

	var complianceSum, localContentSum float64
	for _, p := range records {
		o := &a.Overview
		o.TotalProcurements++
		o.TotalValue += p.EstimatedValue
		o.TotalNegotiationSavings += p.NegotiationSavings
		o.TotalSMEsParticipated += p.SMEsParticipated
		o.TotalSMEsAwarded += p.SMEsAwarded
		complianceSum += p.ComplianceScore
		localContentSum += p.LocalContentPercentage

		switch p.Status {
		case "AWARDED", "CONTRACT_SIGNED":
			o.AwardedContracts++
		case "UNDER_EVALUATION":
			o.UnderEvaluation++
		}
		switch p.RiskLevel {
		case domain.RiskLow:
			o.LowRiskCount++
		case domain.RiskMedium:
			o.MediumRiskCount++
		case domain.RiskHigh:
			o.HighRiskCount++
		case domain.RiskCritical:
			o.CriticalRiskCount++
		}

		addBucket(a.CategoryBreakdown, p.Category, p)
		addBucket(a.MethodBreakdown, p.ProcurementMethod, p)
		a.RiskDistribution[p.RiskLevel]++

		q := quarterOf(p.TenderPublicationDate)
		if quarters[q] == nil {
			quarters[q] = &domain.QuarterlyTrend{Quarter: q}
		}
		quarters[q].Count++
		quarters[q].Value += p.EstimatedValue
	}

	if n := len(records); n > 0 {
		a.Overview.AverageComplianceScore = complianceSum / float64(n)
		a.Overview.AverageLocalContent = localContentSum / float64(n)
	}

	for _, t := range quarters {
		a.QuarterlyTrends = append(a.QuarterlyTrends, *t)
	}
	sort.Slice(a.QuarterlyTrends, func(i, j int) bool {
		return a.QuarterlyTrends[i].Quarter < a.QuarterlyTrends[j].Quarter
	})
	return a
}

func addBucket(m map[string]domain.BreakdownBucket, key string, p domain.Procurement) {
	b := m[key]
	// Compliance is kept as a running mean.
	b.Compliance = (b.Compliance*float64(b.Count) + p.ComplianceScore) / float64(b.Count+1)
	b.Count++
	b.Value += p.EstimatedValue
	m[key] = b
}

func quarterOf(t time.Time) string {
	return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}
