package domain

// IDCount mirrors the `_count: {id: n}` shape the dashboard UI consumes for
// grouped counts.
type IDCount struct {
	ID int `json:"id"`
}

// GroupCount is one group-by row. Exactly one of Category/Sector/Status is
// set depending on which grouping produced it.
type GroupCount struct {
	Category string  `json:"category,omitempty"`
	Sector   string  `json:"sector,omitempty"`
	Status   string  `json:"status,omitempty"`
	Count    IDCount `json:"_count"`
}

// DashboardOverview is the entity-count block of the dashboard payload.
type DashboardOverview struct {
	TotalEntities int          `json:"totalEntities"`
	EntityCounts  []GroupCount `json:"entityCounts"`
	SectorCounts  []GroupCount `json:"sectorCounts"`
	StatusCounts  []GroupCount `json:"statusCounts"`
}

// RiskDistribution is the fixed-shape portfolio risk summary.
type RiskDistribution struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// ComplianceOverview is the fixed-shape compliance summary.
type ComplianceOverview struct {
	Compliant    int `json:"compliant"`
	Pending      int `json:"pending"`
	Overdue      int `json:"overdue"`
	NonCompliant int `json:"nonCompliant"`
}

// PortfolioMetrics is the fixed-shape portfolio financial totals block.
type PortfolioMetrics struct {
	TotalAssets           float64 `json:"totalAssets"`
	TotalRevenue          float64 `json:"totalRevenue"`
	TotalEmployees        int     `json:"totalEmployees"`
	DividendOwed          float64 `json:"dividendOwed"`
	GuaranteesOutstanding float64 `json:"guaranteesOutstanding"`
}

// Dashboard is the full GET /dashboard payload. Its shape is invariant: when
// the store is unreachable the same structure is computed from the in-memory
// seed dataset and Source flips to "fallback".
type Dashboard struct {
	Overview   DashboardOverview  `json:"overview"`
	Risk       RiskDistribution   `json:"risk"`
	Compliance ComplianceOverview `json:"compliance"`
	Portfolio  PortfolioMetrics   `json:"portfolio"`
	Source     Source             `json:"source"`
}
