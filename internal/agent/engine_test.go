package agent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghana-siga/siga-igov/internal/domain"
)

type mockSampleRepo struct {
	samples   []domain.EntityRiskSample
	sampleErr error
	calls     int
}

func (m *mockSampleRepo) ListAll(ctx context.Context) ([]*domain.Entity, error) { return nil, nil }
func (m *mockSampleRepo) Count(ctx context.Context) (int, error)                { return 0, nil }
func (m *mockSampleRepo) DeleteAll(ctx context.Context) error                   { return nil }
func (m *mockSampleRepo) InsertBatch(ctx context.Context, entities []*domain.Entity) (int, error) {
	return 0, nil
}
func (m *mockSampleRepo) GetDetail(ctx context.Context, id string) (*domain.EntityDetail, error) {
	return nil, nil
}
func (m *mockSampleRepo) CountByCategory(ctx context.Context) ([]domain.GroupCount, error) {
	return nil, nil
}
func (m *mockSampleRepo) CountBySector(ctx context.Context) ([]domain.GroupCount, error) {
	return nil, nil
}
func (m *mockSampleRepo) CountByStatus(ctx context.Context) ([]domain.GroupCount, error) {
	return nil, nil
}
func (m *mockSampleRepo) SampleWithRisk(ctx context.Context, n int) ([]domain.EntityRiskSample, error) {
	m.calls++
	return m.samples, m.sampleErr
}

type mockLogRepo struct {
	appended []domain.AgentLog
	recent   []domain.AgentLog
	stats    []domain.AgentStatCount
	err      error
}

func (m *mockLogRepo) Append(ctx context.Context, l *domain.AgentLog) error {
	if m.err != nil {
		return m.err
	}
	m.appended = append(m.appended, *l)
	return nil
}

func (m *mockLogRepo) Recent(ctx context.Context, n int) ([]domain.AgentLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.recent) > n {
		return m.recent[:n], nil
	}
	return m.recent, nil
}

func (m *mockLogRepo) StatsSince(ctx context.Context, t time.Time) ([]domain.AgentStatCount, error) {
	return m.stats, m.err
}

func (m *mockLogRepo) ByAgent(ctx context.Context, agentType domain.AgentType) ([]domain.AgentLog, error) {
	return m.recent, m.err
}

// newTemplateEngine builds an engine with no model configured, so every
// completion takes the template path.
func newTemplateEngine(entities *mockSampleRepo, logs *mockLogRepo) *Engine {
	return NewEngine(nil, entities, logs)
}

func TestTasksCatalogExhaustive(t *testing.T) {
	e := newTemplateEngine(&mockSampleRepo{}, &mockLogRepo{})

	catalogs, err := e.Tasks("")
	require.NoError(t, err)
	require.Len(t, catalogs, len(domain.AgentTypes))

	for _, c := range catalogs {
		assert.NotEmpty(t, c.AgentName, "agent %s has no display name", c.AgentType)
		require.Len(t, c.Tasks, 3, "agent %s catalog size", c.AgentType)
		for i, task := range c.Tasks {
			assert.Equal(t, i, task.Index)
			assert.True(t, task.CanExecute)
			assert.NotEmpty(t, task.Name)
			assert.NotEmpty(t, task.Description)
		}
	}
}

func TestTasksSingleAgent(t *testing.T) {
	e := newTemplateEngine(&mockSampleRepo{}, &mockLogRepo{})

	catalogs, err := e.Tasks("RISK_ANALYST")
	require.NoError(t, err)
	require.Len(t, catalogs, 1)
	assert.Equal(t, "RISK_ANALYST", catalogs[0].AgentType)
	assert.Equal(t, "Risk Analysis Agent", catalogs[0].AgentName)
}

func TestTasksRejectsUnknownType(t *testing.T) {
	e := newTemplateEngine(&mockSampleRepo{}, &mockLogRepo{})

	_, err := e.Tasks("ORACLE")
	require.Error(t, err)
	assert.True(t, errors.IsBadRequest(err))
	assert.Equal(t, "Invalid agent type", errors.FromError(err).Message)
}

func TestExecuteValidatesBeforeAnyWork(t *testing.T) {
	entities := &mockSampleRepo{}
	logs := &mockLogRepo{}
	e := newTemplateEngine(entities, logs)
	ctx := context.Background()

	_, err := e.Execute(ctx, "ORACLE", 0, "")
	assert.True(t, errors.IsBadRequest(err))

	_, err = e.Execute(ctx, "INGESTION", 7, "")
	assert.True(t, errors.IsBadRequest(err))
	assert.Equal(t, "Invalid task index", errors.FromError(err).Message)

	assert.Zero(t, entities.calls, "rejected dispatch must not touch the store")
	assert.Empty(t, logs.appended, "rejected dispatch must not be logged")
}

func TestExecuteTemplateFallback(t *testing.T) {
	entities := &mockSampleRepo{samples: []domain.EntityRiskSample{
		{EntityID: "soe-001", Sector: "Energy", OverallScore: 70},
		{EntityID: "soe-003", Sector: "Energy", OverallScore: 80},
	}}
	logs := &mockLogRepo{}
	e := newTemplateEngine(entities, logs)

	res, err := e.Execute(context.Background(), "RISK_ANALYST", 1, "soe-001")
	require.NoError(t, err)

	assert.Equal(t, "RISK_ANALYST", res.AgentType)
	assert.Equal(t, "Identify High-Risk Entities", res.Task.Name)
	assert.Equal(t, domain.AgentStatusSuccess, res.Result.Status)
	assert.Equal(t, domain.SourceFallback, res.Result.Source)
	assert.Equal(t, "soe-001", res.Result.TargetEntity)
	assert.Contains(t, res.Result.Output, "Risk Analysis Agent")

	require.Len(t, logs.appended, 1)
	row := logs.appended[0]
	assert.Equal(t, domain.AgentRiskAnalyst, row.AgentType)
	assert.Equal(t, "Identify High-Risk Entities", row.TaskName)
	assert.Equal(t, domain.AgentStatusSuccess, row.Status)
	assert.NotEmpty(t, row.ID)
}

func TestExecuteSurvivesLogAppendFailure(t *testing.T) {
	entities := &mockSampleRepo{}
	logs := &mockLogRepo{err: fmt.Errorf("store offline")}
	e := newTemplateEngine(entities, logs)

	res, err := e.Execute(context.Background(), "GOVERNANCE", 0, "")
	require.NoError(t, err)
	assert.Equal(t, domain.AgentStatusSuccess, res.Result.Status)
}

func TestInsightsTemplateInterpolation(t *testing.T) {
	entities := &mockSampleRepo{samples: []domain.EntityRiskSample{
		{EntityID: "soe-001", Sector: "Energy", OverallScore: 70},
		{EntityID: "jvc-001", Sector: "Oil & Gas", OverallScore: 75},
	}}
	e := newTemplateEngine(entities, &mockLogRepo{})

	res, err := e.Insights(context.Background(), "RISK_ANALYST")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Context.TotalEntities)
	assert.InDelta(t, 72.5, res.Context.AverageRiskScore, 0.001)
	assert.Equal(t, []string{"Energy", "Oil & Gas"}, res.Context.Sectors)
	assert.Equal(t,
		"Current risk assessment shows an average score of 72.5. Focus on high-risk entities and implement mitigation strategies.",
		res.Insights)
}

func TestInsightsPropagatesContextError(t *testing.T) {
	entities := &mockSampleRepo{sampleErr: fmt.Errorf("store offline")}
	e := newTemplateEngine(entities, &mockLogRepo{})

	_, err := e.Insights(context.Background(), "PORTFOLIO")
	require.Error(t, err)
}

func TestInsightsRejectsUnknownType(t *testing.T) {
	e := newTemplateEngine(&mockSampleRepo{}, &mockLogRepo{})

	_, err := e.Insights(context.Background(), "sorcerer")
	assert.True(t, errors.IsBadRequest(err))
}

func TestContributions(t *testing.T) {
	logs := &mockLogRepo{stats: []domain.AgentStatCount{
		{AgentType: domain.AgentRiskAnalyst, Status: domain.AgentStatusSuccess, Count: 3},
		{AgentType: domain.AgentRiskAnalyst, Status: domain.AgentStatusFailure, Count: 1},
		{AgentType: domain.AgentGovernance, Status: domain.AgentStatusSuccess, Count: 2},
	}}
	e := newTemplateEngine(&mockSampleRepo{}, logs)

	res, err := e.Contributions(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Contributions, len(domain.AgentTypes))

	risk := res.Contributions["RISK_ANALYST"]
	assert.Equal(t, 4, risk.TotalExecutions)
	assert.InDelta(t, 75.0, risk.SuccessRate, 0.001)
	assert.Equal(t, 3, risk.InsightsGenerated)
	assert.Equal(t, 3, risk.RiskIdentifications)
	assert.Zero(t, risk.ComplianceIssuesFound)

	gov := res.Contributions["GOVERNANCE"]
	assert.Equal(t, 2, gov.ComplianceIssuesFound)

	idle := res.Contributions["INGESTION"]
	assert.Zero(t, idle.TotalExecutions)
	assert.Zero(t, idle.SuccessRate)

	assert.Equal(t, len(domain.AgentTypes), res.Summary.TotalAgents)
	assert.Equal(t, 6, res.Summary.TotalExecutions)
	assert.Equal(t, 5, res.Summary.TotalInsightsGenerated)
	assert.Equal(t, 3, res.Summary.TotalRiskIdentifications)
	assert.Equal(t, 2, res.Summary.TotalComplianceIssuesFound)
}

func TestOverview(t *testing.T) {
	now := time.Now()
	logs := &mockLogRepo{
		recent: []domain.AgentLog{
			{ID: "1", AgentType: domain.AgentRiskAnalyst, Status: domain.AgentStatusSuccess, Timestamp: now},
			{ID: "2", AgentType: domain.AgentRiskAnalyst, Status: domain.AgentStatusFailure, Timestamp: now.Add(-time.Hour)},
		},
		stats: []domain.AgentStatCount{
			{AgentType: domain.AgentRiskAnalyst, Status: domain.AgentStatusSuccess, Count: 1},
			{AgentType: domain.AgentRiskAnalyst, Status: domain.AgentStatusFailure, Count: 1},
		},
	}
	e := newTemplateEngine(&mockSampleRepo{}, logs)

	res, err := e.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Agents, len(domain.AgentTypes))

	var risk *AgentPerformance
	for i := range res.Agents {
		if res.Agents[i].AgentType == "RISK_ANALYST" {
			risk = &res.Agents[i]
		}
	}
	require.NotNil(t, risk)
	assert.Equal(t, 2, risk.TotalTasks)
	assert.InDelta(t, 50.0, risk.SuccessRate, 0.001)
	require.NotNil(t, risk.LastActivity)
	assert.Equal(t, now, *risk.LastActivity)

	assert.Equal(t, len(domain.AgentTypes), res.SystemHealth.TotalAgents)
	assert.Equal(t, 1, res.SystemHealth.ActiveAgents)
	assert.Len(t, res.RecentActivity, 2)
}

func TestStatus(t *testing.T) {
	now := time.Now()
	logs := &mockLogRepo{recent: []domain.AgentLog{
		{ID: "1", AgentType: domain.AgentIngestion, Status: domain.AgentStatusFailure, DurationMs: 300, Timestamp: now},
		{ID: "2", AgentType: domain.AgentIngestion, Status: domain.AgentStatusSuccess, DurationMs: 100, Timestamp: now.Add(-time.Hour)},
	}}
	e := newTemplateEngine(&mockSampleRepo{}, logs)

	res, err := e.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Agents, len(domain.AgentTypes))

	for _, a := range res.Agents {
		switch a.AgentType {
		case "INGESTION":
			// Latest row wins for the displayed status.
			assert.Equal(t, domain.AgentStatusFailure, a.Status)
			assert.Equal(t, 2, a.TotalExecutions)
			assert.InDelta(t, 200.0, a.AverageDuration, 0.001)
		default:
			assert.Equal(t, domain.AgentStatusIdle, a.Status)
			assert.Zero(t, a.TotalExecutions)
			assert.Nil(t, a.LastActivity)
		}
	}
}

func TestCatalogMetadataCoversEveryType(t *testing.T) {
	for _, at := range domain.AgentTypes {
		assert.NotEmpty(t, agentMetadata[at].Name, "missing metadata for %s", at)
		assert.NotEmpty(t, agentMetadata[at].Role, "missing role for %s", at)
		assert.NotEmpty(t, agentTasks[at], "missing tasks for %s", at)
		assert.NotEmpty(t, fallbackInsight(at, domain.InsightContext{}))
	}
}

func TestTaskAtRange(t *testing.T) {
	_, err := TaskAt(domain.AgentPortfolio, -1)
	assert.Error(t, err)
	_, err = TaskAt(domain.AgentPortfolio, 3)
	assert.Error(t, err)
	task, err := TaskAt(domain.AgentPortfolio, 2)
	require.NoError(t, err)
	assert.Equal(t, "Guarantee Exposure Summary", task.Name)
}
