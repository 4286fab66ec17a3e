package domain

import "time"

// Entity categories tracked by the registry.
const (
	CategorySOE = "SOE"
	CategoryJVC = "JVC"
	CategoryOSE = "OSE"
)

// Source marks which layer produced a payload, so callers (and tests) can
// tell a live store read apart from degraded data.
type Source string

const (
	SourceStore       Source = "store"
	SourceFallback    Source = "fallback"
	SourceSynthesized Source = "synthesized"
)

// Entity is one registered state entity (SOE, JVC or OSE).
type Entity struct {
	ID              string     `json:"id"`
	EntityID        string     `json:"entityId"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Sector          string     `json:"sector"`
	ParentMinistry  string     `json:"parentMinistry"`
	Status          string     `json:"status"`
	ContactEmail    *string    `json:"contactEmail"`
	ContactPhone    *string    `json:"contactPhone"`
	Website         *string    `json:"website"`
	Description     *string    `json:"description"`
	EstablishedDate *string    `json:"establishedDate"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BoardMember is one seat on an entity's board.
type BoardMember struct {
	ID            string `json:"id"`
	EntityID      string `json:"entityId"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	AppointedDate string `json:"appointedDate"`
}

// RiskFactor is a named component score inside a quarterly risk record.
type RiskFactor struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// RiskFactors is the JSON envelope the risk_scores table stores its named
// factor list under.
type RiskFactors struct {
	Factors []RiskFactor `json:"factors"`
}

// RiskScore is one quarter's composite risk rating for an entity.
type RiskScore struct {
	ID             string      `json:"id"`
	EntityID       string      `json:"entityId"`
	Period         string      `json:"period"` // e.g. 2024-Q1
	OverallScore   int         `json:"overallScore"`
	FinancialRisk  int         `json:"financialRisk"`
	OperationalRisk int        `json:"operationalRisk"`
	GovernanceRisk int         `json:"governanceRisk"`
	ComplianceRisk int         `json:"complianceRisk"`
	RiskFactors    RiskFactors `json:"riskFactors"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// KpiData is one month's financial and operational metrics for an entity.
type KpiData struct {
	ID                   string    `json:"id"`
	EntityID             string    `json:"entityId"`
	Period               string    `json:"period"` // YYYY-MM
	Year                 int       `json:"year"`
	Month                int       `json:"month"`
	Revenue              float64   `json:"revenue"`
	Profit               float64   `json:"profit"`
	Assets               float64   `json:"assets"`
	Liabilities          float64   `json:"liabilities"`
	Equity               float64   `json:"equity"`
	Roa                  float64   `json:"roa"`
	Roe                  float64   `json:"roe"`
	DebtToEquity         float64   `json:"debtToEquity"`
	EmployeeCount        int       `json:"employeeCount"`
	ServiceDeliveryIndex float64   `json:"serviceDeliveryIndex"`
	CustomerSatisfaction float64   `json:"customerSatisfaction"`
	ReportingCompliance  float64   `json:"reportingCompliance"`
	GovernanceScore      float64   `json:"governanceScore"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Compliance log statuses.
const (
	ComplianceCompliant = "COMPLIANT"
	CompliancePending   = "PENDING"
	ComplianceOverdue   = "OVERDUE"
)

// ComplianceLog is one tracked regulatory requirement instance.
type ComplianceLog struct {
	ID            string     `json:"id"`
	EntityID      string     `json:"entityId"`
	Requirement   string     `json:"requirement"`
	Category      string     `json:"category"`
	Status        string     `json:"status"`
	DueDate       time.Time  `json:"dueDate"`
	CompletedDate *time.Time `json:"completedDate"`
	AssignedTo    string     `json:"assignedTo"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Dividend is one financial year's declared/paid dividend for an entity.
type Dividend struct {
	ID             string  `json:"id"`
	EntityID       string  `json:"entityId"`
	Year           int     `json:"year"`
	DeclaredAmount float64 `json:"declaredAmount"`
	PaidAmount     float64 `json:"paidAmount"`
	Status         string  `json:"status"`
}

// Guarantee is one sovereign guarantee issued on behalf of an entity.
type Guarantee struct {
	ID         string     `json:"id"`
	EntityID   string     `json:"entityId"`
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency"`
	Purpose    string     `json:"purpose"`
	IssuedDate time.Time  `json:"issuedDate"`
	ExpiryDate *time.Time `json:"expiryDate"`
	Status     string     `json:"status"`
}

// EntityRiskSample pairs an entity with its most recent overall risk score
// (zero when the entity has no recorded scores).
type EntityRiskSample struct {
	EntityID     string
	Name         string
	Sector       string
	OverallScore int
}

// EntityDetail is one entity plus its bounded related collections, as served
// by GET /entities/{id}. Every collection is guaranteed non-empty for a found
// entity: gaps are backfilled with synthesized rows before the response goes
// out. Source records which layer resolved the entity itself.
type EntityDetail struct {
	Entity
	BoardMembers   []BoardMember   `json:"boardMembers"`
	RiskScores     []RiskScore     `json:"riskScores"`
	ComplianceLogs []ComplianceLog `json:"complianceLogs"`
	KpiData        []KpiData       `json:"kpiData"`
	Dividends      []Dividend      `json:"dividends"`
	Guarantees     []Guarantee     `json:"guarantees"`
	Source         Source          `json:"source"`
}
