package synth

import (
	"testing"
	"time"

	"github.com/ghana-siga/siga-igov/internal/domain"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestKpiSeriesDeterministic(t *testing.T) {
	a := KpiSeries("soe-001", testNow, KpiMonths)
	b := KpiSeries("soe-001", testNow, KpiMonths)
	if len(a) != KpiMonths {
		t.Fatalf("KpiSeries() len = %d, want %d", len(a), KpiMonths)
	}
	for i := range a {
		if a[i].Revenue != b[i].Revenue || a[i].EmployeeCount != b[i].EmployeeCount {
			t.Fatalf("KpiSeries() not deterministic at row %d", i)
		}
	}

	other := KpiSeries("soe-002", testNow, KpiMonths)
	if a[0].Revenue == other[0].Revenue && a[1].Revenue == other[1].Revenue {
		t.Error("KpiSeries() identical for different entities")
	}
}

func TestKpiSeriesPeriods(t *testing.T) {
	rows := KpiSeries("soe-001", testNow, KpiMonths)
	if rows[0].Period != "2025-06" {
		t.Errorf("first period = %q, want 2025-06", rows[0].Period)
	}
	if rows[len(rows)-1].Period != "2024-07" {
		t.Errorf("last period = %q, want 2024-07", rows[len(rows)-1].Period)
	}
	for i, r := range rows {
		if r.EntityID != "soe-001" {
			t.Errorf("row %d entityId = %q", i, r.EntityID)
		}
		if r.Revenue < revenueMin || r.Revenue >= revenueMin+revenueSpan {
			t.Errorf("row %d revenue %.0f out of range", i, r.Revenue)
		}
		if r.EmployeeCount < employeesMin || r.EmployeeCount >= employeesMin+employeesSpan {
			t.Errorf("row %d employees %d out of range", i, r.EmployeeCount)
		}
	}
}

func TestRiskSeriesQuarters(t *testing.T) {
	rows := RiskSeries("jvc-001", testNow, RiskQuarters)
	if len(rows) != RiskQuarters {
		t.Fatalf("RiskSeries() len = %d, want %d", len(rows), RiskQuarters)
	}
	want := []string{"2025-Q2", "2025-Q1", "2024-Q4", "2024-Q3"}
	for i, r := range rows {
		if r.Period != want[i] {
			t.Errorf("row %d period = %q, want %q", i, r.Period, want[i])
		}
		if r.OverallScore < overallRiskMin || r.OverallScore >= overallRiskMin+overallRiskSpan {
			t.Errorf("row %d overall score %d out of range", i, r.OverallScore)
		}
		if len(r.RiskFactors.Factors) != len(riskFactorNames) {
			t.Errorf("row %d has %d factors, want %d", i, len(r.RiskFactors.Factors), len(riskFactorNames))
		}
	}
}

func TestComplianceChecklist(t *testing.T) {
	rows := ComplianceChecklist("ose-001", testNow)
	if len(rows) != ComplianceReq {
		t.Fatalf("ComplianceChecklist() len = %d, want %d", len(rows), ComplianceReq)
	}
	for i, r := range rows {
		wantDue := testNow.AddDate(0, 0, i*30-60)
		if !r.DueDate.Equal(wantDue) {
			t.Errorf("row %d due = %v, want %v", i, r.DueDate, wantDue)
		}
		switch r.Status {
		case domain.ComplianceCompliant:
			if r.CompletedDate == nil {
				t.Errorf("row %d compliant without completion date", i)
			}
		case domain.ComplianceOverdue:
			if r.Notes != "Requires immediate attention" {
				t.Errorf("row %d overdue notes = %q", i, r.Notes)
			}
			fallthrough
		case domain.CompliancePending:
			if r.CompletedDate != nil {
				t.Errorf("row %d has completion date with status %s", i, r.Status)
			}
		}
	}
}

func TestProcurementRecords(t *testing.T) {
	rows := ProcurementRecords("soe-003", "Volta River Authority", testNow)
	if len(rows) < 2 || len(rows) > 5 {
		t.Fatalf("ProcurementRecords() len = %d, want 2-5", len(rows))
	}
	again := ProcurementRecords("soe-003", "Volta River Authority", testNow)
	if len(again) != len(rows) {
		t.Fatal("ProcurementRecords() not deterministic")
	}
	for i, p := range rows {
		if p.EstimatedValue != again[i].EstimatedValue {
			t.Fatalf("ProcurementRecords() row %d differs between calls", i)
		}
		if p.Currency != "GHS" {
			t.Errorf("row %d currency = %q", i, p.Currency)
		}
		if p.NegotiationSavings < 0 {
			t.Errorf("row %d negative savings", i)
		}
		if p.SMEsAwarded > p.SMEsParticipated {
			t.Errorf("row %d awarded %d SMEs of %d participants", i, p.SMEsAwarded, p.SMEsParticipated)
		}
		if got := riskLevelFor(p.ComplianceScore); p.RiskLevel != got {
			t.Errorf("row %d risk %q inconsistent with compliance %.1f", i, p.RiskLevel, p.ComplianceScore)
		}
	}
}

func TestRiskLevelFor(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, domain.RiskLow},
		{85, domain.RiskLow},
		{75, domain.RiskMedium},
		{65, domain.RiskHigh},
		{55, domain.RiskCritical},
	}
	for _, c := range cases {
		if got := riskLevelFor(c.score); got != c.want {
			t.Errorf("riskLevelFor(%.0f) = %q, want %q", c.score, got, c.want)
		}
	}
}
