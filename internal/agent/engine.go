// Package agent implements the analytical agent layer: a closed set of agent
// roles, each with a static task catalog and an insight prompt, executed
// against an external chat-completion model with canned template fallbacks.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ghana-siga/siga-igov/internal/conf"
	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/logger"
	"github.com/ghana-siga/siga-igov/internal/repo"
)

const (
	defaultTimeout   = 30 * time.Second
	contextSampleLen = 10
)

// Engine dispatches agent tasks and insight requests. Construction is cheap;
// the chat model is built lazily by Initialize, which is idempotent and safe
// under concurrent first calls.
type Engine struct {
	cfg      *conf.LLM
	entities repo.EntityRepo
	logs     repo.AgentLogRepo

	initOnce  sync.Once
	chatModel model.ChatModel
	limiter   *rate.Limiter
	timeout   time.Duration
}

func NewEngine(cfg *conf.LLM, entities repo.EntityRepo, logs repo.AgentLogRepo) *Engine {
	return &Engine{cfg: cfg, entities: entities, logs: logs, timeout: defaultTimeout}
}

// Initialize builds the chat model and limiter once. A missing or failing
// model configuration degrades the engine to template-only mode instead of
// failing requests.
func (e *Engine) Initialize() {
	e.initOnce.Do(func() {
		qps, rpm := 1, 60
		if e.cfg != nil {
			if e.cfg.Qps > 0 {
				qps = int(e.cfg.Qps)
			}
			if e.cfg.Rpm > 0 {
				rpm = int(e.cfg.Rpm)
			}
			if d, err := time.ParseDuration(e.cfg.Timeout); err == nil && d > 0 {
				e.timeout = d
			}
		}
		e.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)

		if e.cfg == nil || e.cfg.ApiKey == "" {
			logger.Log.Warn("agent engine: no LLM configured, running in template-only mode")
			return
		}
		cm, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
			BaseURL: e.cfg.BaseUrl,
			APIKey:  e.cfg.ApiKey,
			Model:   e.cfg.Model,
		})
		if err != nil {
			logger.Log.Errorf("agent engine: LLM init failed, falling back to templates: %v", err)
			return
		}
		e.chatModel = cm
	})
}

// generate runs one completion with the engine's limiter and timeout. A nil
// chat model is reported as an error so callers take their fallback path.
func (e *Engine) generate(ctx context.Context, userPrompt string) (string, error) {
	if e.chatModel == nil {
		return "", fmt.Errorf("chat model unavailable")
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.chatModel.Generate(ctx, []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: userPrompt},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// buildContext assembles the aggregate snapshot embedded into prompts:
// entity count, mean overall risk over a small sample, distinct sectors.
func (e *Engine) buildContext(ctx context.Context) (domain.InsightContext, error) {
	samples, err := e.entities.SampleWithRisk(ctx, contextSampleLen)
	if err != nil {
		return domain.InsightContext{}, err
	}
	ic := domain.InsightContext{
		TotalEntities: len(samples),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	seen := map[string]bool{}
	var riskSum int
	for _, s := range samples {
		riskSum += s.OverallScore
		if !seen[s.Sector] {
			seen[s.Sector] = true
			ic.Sectors = append(ic.Sectors, s.Sector)
		}
	}
	if len(samples) > 0 {
		ic.AverageRiskScore = float64(riskSum) / float64(len(samples))
	}
	return ic, nil
}

// TaskCatalog is the tasks payload for one agent.
type TaskCatalog struct {
	AgentType string               `json:"agentType"`
	AgentName string               `json:"agentName"`
	Tasks     []domain.IndexedTask `json:"tasks"`
}

// Tasks lists the static catalog, optionally filtered to one agent type.
func (e *Engine) Tasks(agentType string) ([]TaskCatalog, error) {
	if agentType != "" {
		t, err := domain.ParseAgentType(agentType)
		if err != nil {
			return nil, errors.BadRequest("INVALID_AGENT_TYPE", "Invalid agent type")
		}
		return []TaskCatalog{{AgentType: string(t), AgentName: DisplayName(t), Tasks: Catalog(t)}}, nil
	}
	out := make([]TaskCatalog, 0, len(domain.AgentTypes))
	for _, t := range domain.AgentTypes {
		out = append(out, TaskCatalog{AgentType: string(t), AgentName: DisplayName(t), Tasks: Catalog(t)})
	}
	return out, nil
}

// TaskResult is the outcome of one executed task.
type TaskResult struct {
	Status       string        `json:"status"`
	Output       string        `json:"output"`
	TargetEntity string        `json:"targetEntity,omitempty"`
	DurationMs   int64         `json:"duration"`
	Source       domain.Source `json:"source"`
}

// ExecuteResponse is the POST /agents execute payload.
type ExecuteResponse struct {
	AgentType string           `json:"agentType"`
	Task      domain.AgentTask `json:"task"`
	Result    TaskResult       `json:"result"`
	Timestamp string           `json:"timestamp"`
}

// Execute validates the dispatch target, runs the task through the
// completion model (or its template fallback) and appends an audit log row.
// Invalid agent types and out-of-range indexes are rejected before any
// external call is made.
func (e *Engine) Execute(ctx context.Context, agentType string, taskIndex int, targetEntity string) (*ExecuteResponse, error) {
	t, err := domain.ParseAgentType(agentType)
	if err != nil {
		return nil, errors.BadRequest("INVALID_AGENT_TYPE", "Invalid agent type")
	}
	task, err := TaskAt(t, taskIndex)
	if err != nil {
		return nil, errors.BadRequest("INVALID_TASK_INDEX", "Invalid task index")
	}
	e.Initialize()

	start := time.Now()
	ictx, err := e.buildContext(ctx)
	if err != nil {
		// The task is an opaque unit of work; run it on an empty snapshot
		// rather than failing the dispatch.
		logger.Log.Warnf("agent %s: context build failed: %v", t, err)
	}

	ctxJSON, _ := json.Marshal(ictx)
	prompt := fmt.Sprintf("As %s, perform the task %q (%s)", agentMetadata[t].Role, task.Name, task.Description)
	if targetEntity != "" {
		prompt += fmt.Sprintf(" for entity %s", targetEntity)
	}
	prompt += fmt.Sprintf(". Context: %s", ctxJSON)

	source := domain.SourceStore
	output, genErr := e.generate(ctx, prompt)
	if genErr != nil {
		logger.Log.Warnf("agent %s: completion failed, using template result: %v", t, genErr)
		output = fallbackTaskOutput(t, task, ictx)
		source = domain.SourceFallback
	}

	duration := time.Since(start).Milliseconds()
	logRow := &domain.AgentLog{
		ID:         uuid.NewString(),
		AgentType:  t,
		TaskName:   task.Name,
		Status:     domain.AgentStatusSuccess,
		DurationMs: duration,
		Timestamp:  time.Now(),
	}
	if err := e.logs.Append(ctx, logRow); err != nil {
		logger.Log.Warnf("agent %s: log append failed: %v", t, err)
	}

	return &ExecuteResponse{
		AgentType: string(t),
		Task:      task,
		Result: TaskResult{
			Status:       domain.AgentStatusSuccess,
			Output:       output,
			TargetEntity: targetEntity,
			DurationMs:   duration,
			Source:       source,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// InsightsResponse is the insights action payload.
type InsightsResponse struct {
	AgentType string                `json:"agentType"`
	Context   domain.InsightContext `json:"context"`
	Insights  string                `json:"insights"`
	Timestamp string                `json:"timestamp"`
}

// Insights builds the context summary and asks the completion model for a
// role-specific reading of it, substituting the canned template on any
// failure. Context-build errors propagate: without a snapshot there is
// nothing to interpolate.
func (e *Engine) Insights(ctx context.Context, agentType string) (*InsightsResponse, error) {
	t, err := domain.ParseAgentType(agentType)
	if err != nil {
		return nil, errors.BadRequest("INVALID_AGENT_TYPE", "Invalid agent type")
	}
	e.Initialize()

	ictx, err := e.buildContext(ctx)
	if err != nil {
		return nil, err
	}

	ctxJSON, _ := json.Marshal(ictx)
	insights, genErr := e.generate(ctx, insightPrompt(t, string(ctxJSON)))
	if genErr != nil {
		logger.Log.Warnf("agent %s: insight completion failed, using template: %v", t, genErr)
		insights = fallbackInsight(t, ictx)
	}

	return &InsightsResponse{
		AgentType: string(t),
		Context:   ictx,
		Insights:  insights,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ContributionsSummary is the cross-agent rollup of the contribution map.
type ContributionsSummary struct {
	TotalAgents               int     `json:"totalAgents"`
	TotalExecutions           int     `json:"totalExecutions"`
	AverageSuccessRate        float64 `json:"averageSuccessRate"`
	TotalInsightsGenerated    int     `json:"totalInsightsGenerated"`
	TotalRiskIdentifications  int     `json:"totalRiskIdentifications"`
	TotalComplianceIssuesFound int    `json:"totalComplianceIssuesFound"`
}

// ContributionsResponse is the contributions action payload.
type ContributionsResponse struct {
	Contributions map[string]domain.AgentContribution `json:"contributions"`
	Summary       ContributionsSummary                `json:"summary"`
}

// Contributions aggregates the audit trail per agent type. Store errors are
// not masked here: they surface as a generic failure at the route layer.
func (e *Engine) Contributions(ctx context.Context) (*ContributionsResponse, error) {
	stats, err := e.logs.StatsSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	contributions := make(map[string]domain.AgentContribution, len(domain.AgentTypes))
	for _, t := range domain.AgentTypes {
		var total, success int
		for _, s := range stats {
			if s.AgentType != t {
				continue
			}
			total += s.Count
			if s.Status == domain.AgentStatusSuccess {
				success += s.Count
			}
		}
		c := domain.AgentContribution{
			TotalExecutions:   total,
			InsightsGenerated: success,
		}
		if total > 0 {
			c.SuccessRate = float64(success) / float64(total) * 100
		}
		// Domain counters follow the agent's specialty.
		switch t {
		case domain.AgentRiskAnalyst:
			c.RiskIdentifications = success
		case domain.AgentGovernance:
			c.ComplianceIssuesFound = success
		}
		contributions[string(t)] = c
	}

	var summary ContributionsSummary
	summary.TotalAgents = len(contributions)
	var rateSum float64
	for _, c := range contributions {
		summary.TotalExecutions += c.TotalExecutions
		rateSum += c.SuccessRate
		summary.TotalInsightsGenerated += c.InsightsGenerated
		summary.TotalRiskIdentifications += c.RiskIdentifications
		summary.TotalComplianceIssuesFound += c.ComplianceIssuesFound
	}
	if len(contributions) > 0 {
		summary.AverageSuccessRate = rateSum / float64(len(contributions))
	}

	return &ContributionsResponse{Contributions: contributions, Summary: summary}, nil
}

// AgentPerformance is one agent's trailing-24h performance row.
type AgentPerformance struct {
	AgentType    string     `json:"agentType"`
	Name         string     `json:"name"`
	TotalTasks   int        `json:"totalTasks"`
	SuccessRate  float64    `json:"successRate"`
	LastActivity *time.Time `json:"lastActivity"`
}

// SystemHealth summarises the agent fleet.
type SystemHealth struct {
	TotalAgents        int     `json:"totalAgents"`
	ActiveAgents       int     `json:"activeAgents"`
	AverageSuccessRate float64 `json:"averageSuccessRate"`
}

// OverviewResponse is the default GET /agents payload.
type OverviewResponse struct {
	Agents         []AgentPerformance `json:"agents"`
	RecentActivity []domain.AgentLog  `json:"recentActivity"`
	SystemHealth   SystemHealth       `json:"systemHealth"`
}

// Overview reports per-agent success rates over the trailing 24 hours, the
// recent activity log and a fleet health summary.
func (e *Engine) Overview(ctx context.Context) (*OverviewResponse, error) {
	recent, err := e.logs.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats, err := e.logs.StatsSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	agents := make([]AgentPerformance, 0, len(domain.AgentTypes))
	var rateSum float64
	active := 0
	for _, t := range domain.AgentTypes {
		var total, success int
		for _, s := range stats {
			if s.AgentType != t {
				continue
			}
			total += s.Count
			if s.Status == domain.AgentStatusSuccess {
				success += s.Count
			}
		}
		p := AgentPerformance{AgentType: string(t), Name: DisplayName(t), TotalTasks: total}
		if total > 0 {
			p.SuccessRate = float64(success) / float64(total) * 100
			active++
		}
		for i := range recent {
			if recent[i].AgentType == t {
				ts := recent[i].Timestamp
				p.LastActivity = &ts
				break
			}
		}
		rateSum += p.SuccessRate
		agents = append(agents, p)
	}

	activity := recent
	if len(activity) > 10 {
		activity = activity[:10]
	}
	health := SystemHealth{TotalAgents: len(domain.AgentTypes), ActiveAgents: active}
	if len(agents) > 0 {
		health.AverageSuccessRate = rateSum / float64(len(agents))
	}
	return &OverviewResponse{Agents: agents, RecentActivity: activity, SystemHealth: health}, nil
}

// AgentStatus is one agent's latest execution state.
type AgentStatus struct {
	AgentType       string     `json:"agentType"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	LastActivity    *time.Time `json:"lastActivity"`
	TotalExecutions int        `json:"totalExecutions"`
	AverageDuration float64    `json:"averageDuration"`
}

// StatusResponse is the status action payload.
type StatusResponse struct {
	Agents []AgentStatus `json:"agents"`
}

// Status reports each agent's last known state over the most recent logs.
func (e *Engine) Status(ctx context.Context) (*StatusResponse, error) {
	recent, err := e.logs.Recent(ctx, 100)
	if err != nil {
		return nil, err
	}

	agents := make([]AgentStatus, 0, len(domain.AgentTypes))
	for _, t := range domain.AgentTypes {
		s := AgentStatus{AgentType: string(t), Name: DisplayName(t), Status: domain.AgentStatusIdle}
		var durSum int64
		for i := range recent {
			if recent[i].AgentType != t {
				continue
			}
			if s.TotalExecutions == 0 {
				s.Status = recent[i].Status
				ts := recent[i].Timestamp
				s.LastActivity = &ts
			}
			s.TotalExecutions++
			durSum += recent[i].DurationMs
		}
		if s.TotalExecutions > 0 {
			s.AverageDuration = float64(durSum) / float64(s.TotalExecutions)
		}
		agents = append(agents, s)
	}
	return &StatusResponse{Agents: agents}, nil
}
