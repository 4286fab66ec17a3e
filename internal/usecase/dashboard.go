package usecase

import (
	"context"
	"sort"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/repo"
	"github.com/ghana-siga/siga-igov/internal/seed"
)

// Fixed-shape summary blocks of the dashboard payload. These are static
// portfolio-level figures until per-entity rollups land.
var (
	riskDistribution = domain.RiskDistribution{Low: 30, Medium: 45, High: 20, Critical: 5}

	complianceOverview = domain.ComplianceOverview{Compliant: 65, Pending: 20, Overdue: 10, NonCompliant: 5}

	portfolioMetrics = domain.PortfolioMetrics{
		TotalAssets:           45_600_000_000, // GHS 45.6B
		TotalRevenue:          8_900_000_000,  // GHS 8.9B
		TotalEmployees:        125_000,
		DividendOwed:          340_000_000,   // GHS 340M
		GuaranteesOutstanding: 2_100_000_000, // GHS 2.1B
	}
)

// DashboardUseCase computes the top-level aggregation payload. It never
// returns an error: any store failure degrades to recomputing the same
// shapes from the in-memory seed registry.
type DashboardUseCase struct {
	repo   repo.EntityRepo
	loader *seed.Loader
	log    *log.Helper
}

func NewDashboardUseCase(repo repo.EntityRepo, loader *seed.Loader, logger log.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, loader: loader, log: log.NewHelper(logger)}
}

// Overview builds the dashboard payload, seeding the store first if empty.
func (uc *DashboardUseCase) Overview(ctx context.Context) *domain.Dashboard {
	uc.loader.EnsureSeeded(ctx)

	d, err := uc.fromStore(ctx)
	if err != nil {
		uc.log.Warnf("dashboard store query failed, computing from seed registry: %v", err)
		d = uc.fromSeed()
	}
	d.Risk = riskDistribution
	d.Compliance = complianceOverview
	d.Portfolio = portfolioMetrics
	return d
}

func (uc *DashboardUseCase) fromStore(ctx context.Context) (*domain.Dashboard, error) {
	entityCounts, err := uc.repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	sectorCounts, err := uc.repo.CountBySector(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Dashboard{
		Overview: domain.DashboardOverview{
			TotalEntities: total,
			EntityCounts:  entityCounts,
			SectorCounts:  sectorCounts,
			StatusCounts:  statusCounts,
		},
		Source: domain.SourceStore,
	}, nil
}

// fromSeed computes identical group-by shapes from the embedded registry so
// the payload shape is invariant regardless of store availability.
func (uc *DashboardUseCase) fromSeed() *domain.Dashboard {
	records := seed.Entities()
	byCategory := map[string]int{}
	bySector := map[string]int{}
	byStatus := map[string]int{}
	for _, r := range records {
		byCategory[r.Category]++
		bySector[r.Sector]++
		byStatus[r.Status]++
	}
	return &domain.Dashboard{
		Overview: domain.DashboardOverview{
			TotalEntities: len(records),
			EntityCounts:  toGroupCounts(byCategory, func(gc *domain.GroupCount, k string) { gc.Category = k }),
			SectorCounts:  toGroupCounts(bySector, func(gc *domain.GroupCount, k string) { gc.Sector = k }),
			StatusCounts:  toGroupCounts(byStatus, func(gc *domain.GroupCount, k string) { gc.Status = k }),
		},
		Source: domain.SourceFallback,
	}
}

func toGroupCounts(m map[string]int, set func(*domain.GroupCount, string)) []domain.GroupCount {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]domain.GroupCount, 0, len(keys))
	for _, k := range keys {
		gc := domain.GroupCount{Count: domain.IDCount{ID: m[k]}}
		set(&gc, k)
		out = append(out, gc)
	}
	return out
}
