package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/ghana-siga/siga-igov/internal/agent"
	"github.com/ghana-siga/siga-igov/internal/conf"
	"github.com/ghana-siga/siga-igov/internal/logger"
	"github.com/ghana-siga/siga-igov/internal/repo"
)

// NewAgentEngine wires the agent engine: it configures the engine's own
// file logger from the bootstrap config and hands over the repos. The engine
// itself initialises its chat model lazily on first use.
func NewAgentEngine(c *conf.LLM, lc *conf.Log, entities repo.EntityRepo, logs repo.AgentLogRepo, kl log.Logger) *agent.Engine {
	level, file := "info", ""
	if lc != nil {
		level, file = lc.Level, lc.File
	}
	if err := logger.InitLogger(level, file); err != nil {
		log.NewHelper(kl).Errorf("failed to init agent logger: %v", err)
		_ = logger.InitLogger("info", "")
	}
	return agent.NewEngine(c, entities, logs)
}
