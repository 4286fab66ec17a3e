package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/seed"
)

func procurementFixtureRepo() *mockEntityRepo {
	return &mockEntityRepo{
		entities: []*domain.Entity{
			{EntityID: "soe-001", Name: "Electricity Company of Ghana"},
			{EntityID: "soe-003", Name: "Volta River Authority"},
			{EntityID: "jvc-001", Name: "GOIL Company"},
		},
	}
}

func TestAnalyticsAggregates(t *testing.T) {
	uc := NewProcurementUseCase(procurementFixtureRepo(), log.DefaultLogger)

	a := uc.Analytics(context.Background(), domain.ProcurementFilter{})
	if a.Source != domain.SourceStore {
		t.Errorf("Analytics() source = %q, want store", a.Source)
	}
	if a.Overview.TotalProcurements != len(a.Procurements) {
		t.Errorf("overview count %d != %d records", a.Overview.TotalProcurements, len(a.Procurements))
	}
	// Each of the three entities contributes at least two synthesized rows.
	if len(a.Procurements) < 6 {
		t.Errorf("Analytics() returned %d records, want >= 6", len(a.Procurements))
	}

	riskSum := a.Overview.LowRiskCount + a.Overview.MediumRiskCount +
		a.Overview.HighRiskCount + a.Overview.CriticalRiskCount
	if riskSum != a.Overview.TotalProcurements {
		t.Errorf("risk counts sum %d != total %d", riskSum, a.Overview.TotalProcurements)
	}

	var distSum int
	for _, n := range a.RiskDistribution {
		distSum += n
	}
	if distSum != a.Overview.TotalProcurements {
		t.Errorf("riskDistribution sum %d != total %d", distSum, a.Overview.TotalProcurements)
	}

	var value float64
	for _, p := range a.Procurements {
		value += p.EstimatedValue
	}
	if value != a.Overview.TotalValue {
		t.Errorf("overview value %.0f != summed %.0f", a.Overview.TotalValue, value)
	}

	for i := 1; i < len(a.Procurements); i++ {
		if a.Procurements[i].TenderPublicationDate.After(a.Procurements[i-1].TenderPublicationDate) {
			t.Fatal("records not sorted newest first")
		}
	}
	for i := 1; i < len(a.QuarterlyTrends); i++ {
		if a.QuarterlyTrends[i].Quarter < a.QuarterlyTrends[i-1].Quarter {
			t.Fatal("quarterly trends not sorted ascending")
		}
	}
}

func TestAnalyticsFilters(t *testing.T) {
	uc := NewProcurementUseCase(procurementFixtureRepo(), log.DefaultLogger)
	ctx := context.Background()

	byEntity := uc.Analytics(ctx, domain.ProcurementFilter{EntityID: "soe-001"})
	for _, p := range byEntity.Procurements {
		if p.EntityID != "soe-001" {
			t.Errorf("entity filter leaked record for %q", p.EntityID)
		}
	}

	highOnly := uc.Analytics(ctx, domain.ProcurementFilter{ShowOnlyHighRisk: true})
	for _, p := range highOnly.Procurements {
		if p.RiskLevel != domain.RiskHigh && p.RiskLevel != domain.RiskCritical {
			t.Errorf("high-risk filter leaked %q record", p.RiskLevel)
		}
	}

	banded := uc.Analytics(ctx, domain.ProcurementFilter{MinAmount: 10_000_000, MaxAmount: 30_000_000})
	for _, p := range banded.Procurements {
		if p.EstimatedValue < 10_000_000 || p.EstimatedValue > 30_000_000 {
			t.Errorf("amount filter leaked %.0f", p.EstimatedValue)
		}
	}

	all := uc.Analytics(ctx, domain.ProcurementFilter{})
	var perLevel int
	for _, level := range []string{domain.RiskLow, domain.RiskMedium, domain.RiskHigh, domain.RiskCritical} {
		perLevel += uc.Analytics(ctx, domain.ProcurementFilter{RiskLevel: level}).Overview.TotalProcurements
	}
	if perLevel != all.Overview.TotalProcurements {
		t.Errorf("risk-level partitions sum %d != %d", perLevel, all.Overview.TotalProcurements)
	}
}

func TestAnalyticsFallsBackToSeedRegistry(t *testing.T) {
	repo := &mockEntityRepo{listErr: fmt.Errorf("store offline")}
	uc := NewProcurementUseCase(repo, log.DefaultLogger)

	a := uc.Analytics(context.Background(), domain.ProcurementFilter{})
	if a.Source != domain.SourceFallback {
		t.Errorf("Analytics() source = %q, want fallback", a.Source)
	}
	if a.Overview.TotalProcurements < 2*len(seed.Entities()) {
		t.Errorf("fallback produced %d records for %d entities", a.Overview.TotalProcurements, len(seed.Entities()))
	}
}

func TestQuarterOf(t *testing.T) {
	cases := map[string]string{
		"2025-01": "2025-Q1",
		"2025-04": "2025-Q2",
		"2025-09": "2025-Q3",
		"2025-12": "2025-Q4",
	}
	for in, want := range cases {
		tm, err := time.Parse("2006-01", in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got := quarterOf(tm); got != want {
			t.Errorf("quarterOf(%s) = %q, want %q", in, got, want)
		}
	}
}
