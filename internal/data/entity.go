package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/repo"
)

type entityRepo struct {
	data *Data
	log  *log.Helper
}

func NewEntityRepo(data *Data, logger log.Logger) repo.EntityRepo {
	return &entityRepo{data: data, log: log.NewHelper(logger)}
}

const entityColumns = `id, entity_id, name, category, sector, parent_ministry, status,
	contact_email, contact_phone, website, description, established_date, created_at, updated_at`

func scanEntity(row interface{ Scan(...any) error }) (*domain.Entity, error) {
	var e domain.Entity
	err := row.Scan(&e.ID, &e.EntityID, &e.Name, &e.Category, &e.Sector, &e.ParentMinistry,
		&e.Status, &e.ContactEmail, &e.ContactPhone, &e.Website, &e.Description,
		&e.EstablishedDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entityRepo) ListAll(ctx context.Context) ([]*domain.Entity, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT `+entityColumns+` FROM entities ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	var entities []*domain.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

func (r *entityRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.data.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM entities`).Scan(&n)
	return n, err
}

func (r *entityRepo) DeleteAll(ctx context.Context) error {
	_, err := r.data.db.ExecContext(ctx, `DELETE FROM entities`)
	if err != nil {
		return fmt.Errorf("delete entities: %w", err)
	}
	return nil
}

func (r *entityRepo) InsertBatch(ctx context.Context, entities []*domain.Entity) (int, error) {
	if len(entities) == 0 {
		return 0, nil
	}
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`INSERT INTO entities (` + entityColumns + `) VALUES `)
	for i, e := range entities {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 14
		sb.WriteString("(")
		for j := 1; j <= 14; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+j)
		}
		sb.WriteString(")")
		args = append(args, e.ID, e.EntityID, e.Name, e.Category, e.Sector, e.ParentMinistry,
			e.Status, e.ContactEmail, e.ContactPhone, e.Website, e.Description,
			e.EstablishedDate, e.CreatedAt, e.UpdatedAt)
	}
	sb.WriteString(` ON CONFLICT (entity_id) DO NOTHING`)

	res, err := r.data.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("insert entity batch: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// GetDetail resolves by primary id or by the public entityId, then loads the
// bounded relation collections.
func (r *entityRepo) GetDetail(ctx context.Context, id string) (*domain.EntityDetail, error) {
	row := r.data.db.QueryRowContext(ctx,
		`SELECT `+entityColumns+` FROM entities WHERE id = $1 OR entity_id = $1`, id)
	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("ENTITY_NOT_FOUND", "Entity not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get entity %s: %w", id, err)
	}

	detail := &domain.EntityDetail{Entity: *e, Source: domain.SourceStore}
	if detail.BoardMembers, err = r.boardMembers(ctx, e.EntityID); err != nil {
		return nil, err
	}
	if detail.RiskScores, err = r.riskScores(ctx, e.EntityID, 4); err != nil {
		return nil, err
	}
	if detail.ComplianceLogs, err = r.complianceLogs(ctx, e.EntityID, 10); err != nil {
		return nil, err
	}
	if detail.KpiData, err = r.kpiData(ctx, e.EntityID, 12); err != nil {
		return nil, err
	}
	if detail.Dividends, err = r.dividends(ctx, e.EntityID, 5); err != nil {
		return nil, err
	}
	if detail.Guarantees, err = r.guarantees(ctx, e.EntityID, 5); err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *entityRepo) boardMembers(ctx context.Context, entityID string) ([]domain.BoardMember, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, entity_id, name, position, appointed_date FROM board_members WHERE entity_id = $1`,
		entityID)
	if err != nil {
		return nil, fmt.Errorf("board members: %w", err)
	}
	defer rows.Close()

	var out []domain.BoardMember
	for rows.Next() {
		var m domain.BoardMember
		if err := rows.Scan(&m.ID, &m.EntityID, &m.Name, &m.Position, &m.AppointedDate); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *entityRepo) riskScores(ctx context.Context, entityID string, limit int) ([]domain.RiskScore, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, entity_id, period, overall_score, financial_risk, operational_risk,
			governance_risk, compliance_risk, risk_factors, created_at, updated_at
		 FROM risk_scores WHERE entity_id = $1 ORDER BY period DESC LIMIT $2`,
		entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("risk scores: %w", err)
	}
	defer rows.Close()

	var out []domain.RiskScore
	for rows.Next() {
		var (
			s   domain.RiskScore
			raw []byte
		)
		if err := rows.Scan(&s.ID, &s.EntityID, &s.Period, &s.OverallScore, &s.FinancialRisk,
			&s.OperationalRisk, &s.GovernanceRisk, &s.ComplianceRisk, &raw,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &s.RiskFactors); err != nil {
				r.log.Warnf("bad risk_factors payload for %s: %v", s.ID, err)
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *entityRepo) complianceLogs(ctx context.Context, entityID string, limit int) ([]domain.ComplianceLog, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, entity_id, requirement, category, status, due_date, completed_date,
			assigned_to, notes, created_at, updated_at
		 FROM compliance_logs WHERE entity_id = $1 ORDER BY due_date DESC LIMIT $2`,
		entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("compliance logs: %w", err)
	}
	defer rows.Close()

	var out []domain.ComplianceLog
	for rows.Next() {
		var l domain.ComplianceLog
		if err := rows.Scan(&l.ID, &l.EntityID, &l.Requirement, &l.Category, &l.Status,
			&l.DueDate, &l.CompletedDate, &l.AssignedTo, &l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *entityRepo) kpiData(ctx context.Context, entityID string, limit int) ([]domain.KpiData, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, entity_id, period, year, month, revenue, profit, assets, liabilities,
			equity, roa, roe, debt_to_equity, employee_count, service_delivery_index,
			customer_satisfaction, reporting_compliance, governance_score, created_at, updated_at
		 FROM kpi_data WHERE entity_id = $1 ORDER BY period DESC LIMIT $2`,
		entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("kpi data: %w", err)
	}
	defer rows.Close()

	var out []domain.KpiData
	for rows.Next() {
		var k domain.KpiData
		if err := rows.Scan(&k.ID, &k.EntityID, &k.Period, &k.Year, &k.Month, &k.Revenue,
			&k.Profit, &k.Assets, &k.Liabilities, &k.Equity, &k.Roa, &k.Roe, &k.DebtToEquity,
			&k.EmployeeCount, &k.ServiceDeliveryIndex, &k.CustomerSatisfaction,
			&k.ReportingCompliance, &k.GovernanceScore, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *entityRepo) dividends(ctx context.Context, entityID string, limit int) ([]domain.Dividend, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, entity_id, year, declared_amount, paid_amount, status
		 FROM dividends WHERE entity_id = $1 ORDER BY year DESC LIMIT $2`,
		entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("dividends: %w", err)
	}
	defer rows.Close()

	var out []domain.Dividend
	for rows.Next() {
		var d domain.Dividend
		if err := rows.Scan(&d.ID, &d.EntityID, &d.Year, &d.DeclaredAmount, &d.PaidAmount, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *entityRepo) guarantees(ctx context.Context, entityID string, limit int) ([]domain.Guarantee, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, entity_id, amount, currency, purpose, issued_date, expiry_date, status
		 FROM guarantees WHERE entity_id = $1 ORDER BY issued_date DESC LIMIT $2`,
		entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("guarantees: %w", err)
	}
	defer rows.Close()

	var out []domain.Guarantee
	for rows.Next() {
		var g domain.Guarantee
		if err := rows.Scan(&g.ID, &g.EntityID, &g.Amount, &g.Currency, &g.Purpose,
			&g.IssuedDate, &g.ExpiryDate, &g.Status); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *entityRepo) groupCounts(ctx context.Context, column string) ([]domain.GroupCount, error) {
	rows, err := r.data.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(id) FROM entities GROUP BY %s`, column, column))
	if err != nil {
		return nil, fmt.Errorf("group by %s: %w", column, err)
	}
	defer rows.Close()

	var out []domain.GroupCount
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		gc := domain.GroupCount{Count: domain.IDCount{ID: n}}
		switch column {
		case "category":
			gc.Category = key
		case "sector":
			gc.Sector = key
		case "status":
			gc.Status = key
		}
		out = append(out, gc)
	}
	return out, rows.Err()
}

func (r *entityRepo) CountByCategory(ctx context.Context) ([]domain.GroupCount, error) {
	return r.groupCounts(ctx, "category")
}

func (r *entityRepo) CountBySector(ctx context.Context) ([]domain.GroupCount, error) {
	return r.groupCounts(ctx, "sector")
}

func (r *entityRepo) CountByStatus(ctx context.Context) ([]domain.GroupCount, error) {
	return r.groupCounts(ctx, "status")
}

func (r *entityRepo) SampleWithRisk(ctx context.Context, n int) ([]domain.EntityRiskSample, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT e.entity_id, e.name, e.sector, COALESCE(rs.overall_score, 0)
		 FROM entities e
		 LEFT JOIN LATERAL (
			SELECT overall_score FROM risk_scores
			WHERE entity_id = e.entity_id ORDER BY period DESC LIMIT 1
		 ) rs ON true
		 ORDER BY e.name ASC
		 LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("sample with risk: %w", err)
	}
	defer rows.Close()

	var out []domain.EntityRiskSample
	for rows.Next() {
		var s domain.EntityRiskSample
		if err := rows.Scan(&s.EntityID, &s.Name, &s.Sector, &s.OverallScore); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
