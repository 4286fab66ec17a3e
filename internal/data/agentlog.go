package data

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/repo"
)

type agentLogRepo struct {
	data *Data
	log  *log.Helper
}

func NewAgentLogRepo(data *Data, logger log.Logger) repo.AgentLogRepo {
	return &agentLogRepo{data: data, log: log.NewHelper(logger)}
}

func (r *agentLogRepo) Append(ctx context.Context, l *domain.AgentLog) error {
	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO agent_logs (id, agent_type, task_name, status, duration_ms, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, string(l.AgentType), l.TaskName, l.Status, l.DurationMs, l.Timestamp)
	if err != nil {
		return fmt.Errorf("append agent log: %w", err)
	}
	return nil
}

func (r *agentLogRepo) Recent(ctx context.Context, n int) ([]domain.AgentLog, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, agent_type, task_name, status, duration_ms, timestamp
		 FROM agent_logs ORDER BY timestamp DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("recent agent logs: %w", err)
	}
	defer rows.Close()

	var out []domain.AgentLog
	for rows.Next() {
		var l domain.AgentLog
		if err := rows.Scan(&l.ID, &l.AgentType, &l.TaskName, &l.Status, &l.DurationMs, &l.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *agentLogRepo) StatsSince(ctx context.Context, t time.Time) ([]domain.AgentStatCount, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT agent_type, status, COUNT(id)
		 FROM agent_logs WHERE timestamp >= $1
		 GROUP BY agent_type, status`, t)
	if err != nil {
		return nil, fmt.Errorf("agent log stats: %w", err)
	}
	defer rows.Close()

	var out []domain.AgentStatCount
	for rows.Next() {
		var s domain.AgentStatCount
		if err := rows.Scan(&s.AgentType, &s.Status, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *agentLogRepo) ByAgent(ctx context.Context, agentType domain.AgentType) ([]domain.AgentLog, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, agent_type, task_name, status, duration_ms, timestamp
		 FROM agent_logs WHERE agent_type = $1 ORDER BY timestamp DESC`, string(agentType))
	if err != nil {
		return nil, fmt.Errorf("agent logs by type: %w", err)
	}
	defer rows.Close()

	var out []domain.AgentLog
	for rows.Next() {
		var l domain.AgentLog
		if err := rows.Scan(&l.ID, &l.AgentType, &l.TaskName, &l.Status, &l.DurationMs, &l.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
