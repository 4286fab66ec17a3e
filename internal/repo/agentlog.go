package repo

import (
	"context"
	"time"

	"github.com/ghana-siga/siga-igov/internal/domain"
)

// AgentLogRepo is the audit trail behind agent status, overview and
// contribution aggregation. Unlike the entity paths, errors here are not
// masked: aggregation failures propagate to the route layer.
type AgentLogRepo interface {
	// Append records one task execution.
	Append(ctx context.Context, l *domain.AgentLog) error
	// Recent returns the newest n logs, newest first.
	Recent(ctx context.Context, n int) ([]domain.AgentLog, error)
	// StatsSince counts logs per (agentType, status) bucket since t.
	StatsSince(ctx context.Context, t time.Time) ([]domain.AgentStatCount, error)
	// ByAgent returns all logs for one agent, newest first.
	ByAgent(ctx context.Context, agentType domain.AgentType) ([]domain.AgentLog, error)
}
