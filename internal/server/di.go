package server

import (
	"github.com/google/wire"

	"github.com/ghana-siga/siga-igov/internal/data"
	"github.com/ghana-siga/siga-igov/internal/seed"
	"github.com/ghana-siga/siga-igov/internal/service"
	"github.com/ghana-siga/siga-igov/internal/usecase"
)

// ProviderSet is the dependency-injection provider set for the service.
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewAgentEngine,

	// Data providers
	data.NewData,
	data.NewEntityRepo,
	data.NewAgentLogRepo,

	// Seed loader
	seed.NewLoader,

	// UseCase providers
	usecase.NewEntityUseCase,
	usecase.NewDashboardUseCase,
	usecase.NewProcurementUseCase,

	// Service providers
	service.NewSigaService,
)
