package data

import (
	"database/sql"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/ghana-siga/siga-igov/internal/conf"
)

// Data wraps the shared database handle.
type Data struct {
	db *sql.DB
}

// NewData opens the connection pool and initialises the schema. An
// unreachable store is not fatal: the service starts anyway and every
// store-backed path degrades to its fallback until the store comes back.
// The returned cleanup closes the pool.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	h := log.NewHelper(logger)
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		h.Warnf("database unreachable, serving fallback data: %v", err)
	} else if err := initSchema(db); err != nil {
		h.Warnf("failed to init schema: %v", err)
	}

	cleanup := func() {
		h.Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			sector TEXT NOT NULL,
			parent_ministry TEXT NOT NULL,
			status TEXT NOT NULL,
			contact_email TEXT,
			contact_phone TEXT,
			website TEXT,
			description TEXT,
			established_date TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS board_members (
			id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL REFERENCES entities(entity_id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			position TEXT NOT NULL,
			appointed_date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS risk_scores (
			id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL REFERENCES entities(entity_id) ON DELETE CASCADE,
			period TEXT NOT NULL,
			overall_score INT NOT NULL,
			financial_risk INT NOT NULL,
			operational_risk INT NOT NULL,
			governance_risk INT NOT NULL,
			compliance_risk INT NOT NULL,
			risk_factors JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS kpi_data (
			id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL REFERENCES entities(entity_id) ON DELETE CASCADE,
			period TEXT NOT NULL,
			year INT NOT NULL,
			month INT NOT NULL,
			revenue DOUBLE PRECISION NOT NULL,
			profit DOUBLE PRECISION NOT NULL,
			assets DOUBLE PRECISION NOT NULL,
			liabilities DOUBLE PRECISION NOT NULL,
			equity DOUBLE PRECISION NOT NULL,
			roa DOUBLE PRECISION NOT NULL,
			roe DOUBLE PRECISION NOT NULL,
			debt_to_equity DOUBLE PRECISION NOT NULL,
			employee_count INT NOT NULL,
			service_delivery_index DOUBLE PRECISION NOT NULL,
			customer_satisfaction DOUBLE PRECISION NOT NULL,
			reporting_compliance DOUBLE PRECISION NOT NULL,
			governance_score DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS compliance_logs (
			id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL REFERENCES entities(entity_id) ON DELETE CASCADE,
			requirement TEXT NOT NULL,
			category TEXT NOT NULL,
			status TEXT NOT NULL,
			due_date TIMESTAMPTZ NOT NULL,
			completed_date TIMESTAMPTZ,
			assigned_to TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dividends (
			id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL REFERENCES entities(entity_id) ON DELETE CASCADE,
			year INT NOT NULL,
			declared_amount DOUBLE PRECISION NOT NULL,
			paid_amount DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS guarantees (
			id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL REFERENCES entities(entity_id) ON DELETE CASCADE,
			amount DOUBLE PRECISION NOT NULL,
			currency TEXT NOT NULL DEFAULT 'GHS',
			purpose TEXT NOT NULL DEFAULT '',
			issued_date TIMESTAMPTZ NOT NULL,
			expiry_date TIMESTAMPTZ,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS agent_logs (
			id TEXT PRIMARY KEY,
			agent_type TEXT NOT NULL,
			task_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			timestamp TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_logs_timestamp ON agent_logs (timestamp DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
