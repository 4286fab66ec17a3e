package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/ghana-siga/siga-igov/internal/agent"
	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/usecase"
)

// SigaService binds the use cases and the agent engine to the HTTP surface.
type SigaService struct {
	entity      *usecase.EntityUseCase
	dashboard   *usecase.DashboardUseCase
	procurement *usecase.ProcurementUseCase
	engine      *agent.Engine
	log         *log.Helper
}

func NewSigaService(
	entity *usecase.EntityUseCase,
	dashboard *usecase.DashboardUseCase,
	procurement *usecase.ProcurementUseCase,
	engine *agent.Engine,
	logger log.Logger,
) *SigaService {
	return &SigaService{
		entity:      entity,
		dashboard:   dashboard,
		procurement: procurement,
		engine:      engine,
		log:         log.NewHelper(logger),
	}
}

// ListEntities returns the registry sorted by name.
func (s *SigaService) ListEntities(ctx context.Context) ([]*domain.Entity, error) {
	entities, err := s.entity.List(ctx)
	if err != nil {
		return nil, err
	}
	if entities == nil {
		entities = []*domain.Entity{}
	}
	return entities, nil
}

// ResetEntities wipes and reloads the registry from the embedded dataset.
func (s *SigaService) ResetEntities(ctx context.Context) (*usecase.ResetResult, error) {
	return s.entity.Reset(ctx)
}

// EntityDetail resolves one entity with its related collections.
func (s *SigaService) EntityDetail(ctx context.Context, id string) (*domain.EntityDetail, error) {
	return s.entity.Detail(ctx, id)
}

// Dashboard returns the aggregation payload, never an error.
func (s *SigaService) Dashboard(ctx context.Context) *domain.Dashboard {
	return s.dashboard.Overview(ctx)
}

// ProcurementAnalytics returns the filtered procurement view.
func (s *SigaService) ProcurementAnalytics(ctx context.Context, f domain.ProcurementFilter) *domain.ProcurementAnalytics {
	return s.procurement.Analytics(ctx, f)
}

// Agent actions delegate straight to the engine; errors keep their kratos
// classification for the HTTP layer.

func (s *SigaService) AgentOverview(ctx context.Context) (*agent.OverviewResponse, error) {
	return s.engine.Overview(ctx)
}

func (s *SigaService) AgentStatus(ctx context.Context) (*agent.StatusResponse, error) {
	return s.engine.Status(ctx)
}

func (s *SigaService) AgentTasks(agentType string) ([]agent.TaskCatalog, error) {
	return s.engine.Tasks(agentType)
}

func (s *SigaService) AgentContributions(ctx context.Context) (*agent.ContributionsResponse, error) {
	return s.engine.Contributions(ctx)
}

func (s *SigaService) AgentInsights(ctx context.Context, agentType string) (*agent.InsightsResponse, error) {
	return s.engine.Insights(ctx, agentType)
}

func (s *SigaService) AgentExecute(ctx context.Context, agentType string, taskIndex int, targetEntity string) (*agent.ExecuteResponse, error) {
	return s.engine.Execute(ctx, agentType, taskIndex, targetEntity)
}
